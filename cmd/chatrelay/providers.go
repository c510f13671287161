package main

import (
	"os"

	"github.com/spf13/cobra"

	"chatrelay/pkg/cli"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers with current health state",
	Long: `List every registered provider with its health entry, probing any
provider whose cached entry is stale. Output is the same JSON envelope
the HTTP API serves from GET /providers.`,
	Run: func(cmd *cobra.Command, args []string) {
		formatter := &cli.JSONFormatter{Indent: true}

		a, err := loadApp(true)
		if err != nil {
			formatter.FormatTo(os.Stdout, cli.NewFailure(err))
			os.Exit(1)
		}
		defer a.close()

		entries := a.gateway.ListProviders(cmd.Context())
		formatter.FormatTo(os.Stdout, cli.ProvidersEnvelope{
			Success:   true,
			Providers: entries,
			Count:     len(entries),
		})
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
