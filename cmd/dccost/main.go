package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frontrange/dccost/internal/config"
)

var configPath string

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "dccost",
		Short:         "Datacenter construction and 10-year O&M cost estimator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(newEstimateCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString("dccost: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// loadConfig resolves configuration and builds the process logger.
func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	return cfg, logger, nil
}
