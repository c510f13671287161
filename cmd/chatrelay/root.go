package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "chatrelay",
	Short: "Chatrelay - provider gateway for free chat-completion backends",
	Long: `Chatrelay is a unified gateway over a set of independent, unreliable
chat-completion providers.

It picks a provider per request, tracks provider health with TTL-cached
probes, and normalizes heterogeneous backend failures into a single
response shape, served over HTTP and the command line.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
