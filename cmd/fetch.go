package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/blue-edge/carbonclock/internal/metric"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one fetch cycle and print the savings figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := validateSavings(cfg); err != nil {
			return err
		}

		total, err := newAggregator(cfg).Run(ctx)
		if err != nil {
			return err
		}

		tons, err := metric.Finalize(total, cfg.Savings.Unit, cfg.Savings.Density)
		if err != nil {
			return err
		}

		fmt.Println(formatSavings(tons + cfg.Savings.OffsetTons))
		return nil
	},
}

// formatSavings renders the savings figure with grouped thousands.
func formatSavings(tons float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.3f tCO2 saved", tons)
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
