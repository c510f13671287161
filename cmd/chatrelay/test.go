package main

import (
	"os"

	"github.com/spf13/cobra"

	"chatrelay/pkg/cli"
)

var testCmd = &cobra.Command{
	Use:   "test <provider>",
	Short: "Probe a single provider, bypassing the cache",
	Long: `Probe the named provider immediately, ignoring any fresh cached
entry, and print the refreshed health entry. An unknown provider id
yields an unavailable entry with a not-found error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		formatter := &cli.JSONFormatter{Indent: true}

		a, err := loadApp(true)
		if err != nil {
			formatter.FormatTo(os.Stdout, cli.NewFailure(err))
			os.Exit(1)
		}
		defer a.close()

		entry, _ := a.gateway.TestProvider(cmd.Context(), args[0])
		formatter.FormatTo(os.Stdout, cli.ResultEnvelope{
			Success: true,
			Result:  entry,
		})
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
