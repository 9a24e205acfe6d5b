package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frontrange/dccost/internal/engine"
	"github.com/frontrange/dccost/internal/refdata"
	"github.com/frontrange/dccost/internal/render"
)

func newEstimateCmd() *cobra.Command {
	var (
		capacity  string
		rating    string
		inflation float64
		project   string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute a one-shot cost report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			if err := refdata.EnsureElectricityData(cmd.Context(), refdata.RefreshConfig{
				DataDir:   cfg.DataDir,
				TariffURL: cfg.TariffURL,
			}, logger); err != nil {
				return err
			}

			tables, err := refdata.NewTables(cfg.DataDir, logger)
			if err != nil {
				return err
			}

			tier, err := engine.ParseRating(rating)
			if err != nil {
				return err
			}

			report, err := engine.New(tables, logger).ComputeCosts(capacity, tier, inflation)
			if err != nil {
				return err
			}

			if asJSON {
				return writeReportJSON(cmd.Context(), report, project)
			}
			printReport(report, project)
			return nil
		},
	}

	cmd.Flags().StringVar(&capacity, "capacity", "", `datacenter capacity, e.g. "20MW"`)
	cmd.Flags().StringVar(&rating, "rating", "Tier III", `reliability rating: "Tier III" or "Tier IV"`)
	cmd.Flags().Float64Var(&inflation, "inflation", 0.03, "annual inflation rate as a decimal in [0, 1)")
	cmd.Flags().StringVar(&project, "project", "", "project name for report headings")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report and chart payloads as JSON")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func writeReportJSON(_ context.Context, report *engine.CostReport, project string) error {
	out := struct {
		ProjectName string             `json:"project_name,omitempty"`
		Report      *engine.CostReport `json:"report"`
		Charts      render.Charts      `json:"charts"`
	}{
		ProjectName: project,
		Report:      report,
		Charts:      render.Build(report),
	}

	raw, err := render.EncodeJSON(out)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(raw, '\n'))
	return err
}

func printReport(report *engine.CostReport, project string) {
	heading := report.Capacity + " " + report.Rating
	if project != "" {
		heading = project + " (" + heading + ")"
	}
	fmt.Printf("Datacenter cost report: %s\n\n", heading)

	fmt.Printf("Construction (total $%.2fM):\n", report.Construction.TotalUSDM)
	for _, item := range report.Construction.Items {
		fmt.Printf("  %-24s $%10.2fM\n", item.Component, item.TotalCostUSDM)
	}

	fmt.Printf("\nFirst-year O&M total: $%.2fM (%d)\n", report.Forecast.FirstYearTotalUSDM, report.Forecast.BaseYear)

	fmt.Printf("\n10-year cost of ownership (grand total $%.2fM):\n", report.TCO.GrandTotalUSDM)
	for _, entry := range report.TCO.Entries {
		share := 0.0
		if report.TCO.GrandTotalUSDM > 0 {
			share = entry.ValueUSDM / report.TCO.GrandTotalUSDM * 100
		}
		fmt.Printf("  %-24s $%10.2fM  (%.1f%%)\n", entry.Component, entry.ValueUSDM, share)
	}
}
