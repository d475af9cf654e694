package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blue-edge/carbonclock/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderConfig(cfg)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// renderConfig marshals c as YAML with the API token redacted.
func renderConfig(c *config.Config) (string, error) {
	redacted := *c
	if redacted.Intangles.Token != "" {
		redacted.Intangles.Token = "[redacted]"
	}

	out, err := yaml.Marshal(redacted)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
