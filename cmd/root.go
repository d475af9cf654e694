package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blue-edge/carbonclock/internal/aggregate"
	"github.com/blue-edge/carbonclock/internal/config"
	"github.com/blue-edge/carbonclock/internal/metric"
	"github.com/blue-edge/carbonclock/pkg/intangles"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "carbonclock",
	Short: "Real-time fleet CO2 savings kiosk",
	Long:  "Polls the Intangles fuel_consumed API, sums fuel across all pages, converts to tons of CO2 saved, and serves the running figure to kiosk displays.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newAggregator wires the telemetry client and aggregator from config.
func newAggregator(c *config.Config) *aggregate.Aggregator {
	client := intangles.NewClient(c.Intangles.Token,
		intangles.WithBaseURL(c.Intangles.BaseURL),
		intangles.WithTimeout(time.Duration(c.Intangles.TimeoutSecs)*time.Second),
	)
	query := intangles.Query{
		AccountID:       c.Intangles.AccountID,
		SpecIDs:         c.Intangles.SpecIDs,
		PageSize:        c.Intangles.PageSize,
		Lang:            c.Intangles.Lang,
		NoDefaultFields: c.Intangles.NoDefaultFields,
		Projection:      c.Intangles.Projection,
		Groups:          c.Intangles.Groups,
		LastLocation:    c.Intangles.LastLocation,
	}
	return aggregate.New(client, query, aggregate.WithMaxPages(c.Intangles.MaxPages))
}

// validateSavings fails fast on a bad unit before any network traffic.
func validateSavings(c *config.Config) error {
	_, err := metric.ToKilograms(0, c.Savings.Unit, c.Savings.Density)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
