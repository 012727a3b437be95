// Package cmd implements the CLI commands for the crosslist server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "crosslist",
	Short: "Cross-border listing backend for eBay sellers",
	Long: "An API server that registers Japanese marketplace products on eBay:\n" +
		"per-seller credential management, JPY to USD conversion, Trading API\n" +
		"dispatch, and international shipping cost calculation.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
