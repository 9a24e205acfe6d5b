package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frontrange/dccost/internal/api"
	"github.com/frontrange/dccost/internal/engine"
	"github.com/frontrange/dccost/internal/refdata"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the estimate HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Startup refresh runs before the engine is reachable, so
			// first-use never triggers a fetch.
			if err := refdata.EnsureElectricityData(ctx, refdata.RefreshConfig{
				DataDir:   cfg.DataDir,
				TariffURL: cfg.TariffURL,
			}, logger); err != nil {
				return err
			}

			tables, err := refdata.NewTables(cfg.DataDir, logger)
			if err != nil {
				return err
			}

			eng := engine.New(tables, logger)
			server := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           api.NewMux(eng, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", cfg.ListenAddr).Msg("dccost listening")
				errCh <- server.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info().Msg("shutdown signal received")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
