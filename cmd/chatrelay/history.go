package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatrelay/pkg/cli"
	"chatrelay/pkg/config"
	"chatrelay/pkg/history"
)

var historyFlags struct {
	provider string
	limit    int
	prune    bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the probe audit log",
	Long: `Query recorded probe outcomes from the SQLite audit log, newest
first.

Examples:
  chatrelay history
  chatrelay history --provider bing --limit 20
  chatrelay history --prune`,
	Run: func(cmd *cobra.Command, args []string) {
		formatter := &cli.JSONFormatter{Indent: true}

		fail := func(err error) {
			formatter.FormatTo(os.Stdout, cli.NewFailure(err))
			os.Exit(1)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			fail(err)
		}
		if cfg.History.Enabled != nil && !*cfg.History.Enabled {
			fail(fmt.Errorf("probe history is disabled in configuration"))
		}

		store, err := history.NewStore(&history.StoreConfig{Path: cfg.History.Path})
		if err != nil {
			fail(err)
		}
		defer store.Close()

		if historyFlags.prune {
			pruner := history.NewPruner(store, &history.PrunerConfig{
				RetentionDays: cfg.History.RetentionDays,
			})
			deleted, err := pruner.Prune(cmd.Context())
			if err != nil {
				fail(err)
			}
			formatter.FormatTo(os.Stdout, map[string]any{
				"success": true,
				"deleted": deleted,
			})
			return
		}

		probes, err := store.Recent(cmd.Context(), historyFlags.provider, historyFlags.limit)
		if err != nil {
			fail(err)
		}
		formatter.FormatTo(os.Stdout, map[string]any{
			"success": true,
			"probes":  probes,
			"count":   len(probes),
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFlags.provider, "provider", "p", "", "filter by provider id")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 50, "maximum number of records")
	historyCmd.Flags().BoolVar(&historyFlags.prune, "prune", false, "delete records older than the retention window")
}
