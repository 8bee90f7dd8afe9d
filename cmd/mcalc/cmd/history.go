package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/internal/history"
)

var (
	historyLimit     int
	historyFailed    bool
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded evaluations",
	Long: `Shows and maintains the evaluation history.

Examples:
  mcalc history                      # latest evaluations
  mcalc history list --failed        # only failed evaluations
  mcalc history stats
  mcalc history prune --older-than 720h
  mcalc history clear`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded evaluations",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old evaluations",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all evaluations",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyStatsCmd, historyPruneCmd, historyClearCmd)

	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of entries (default: history.limit from config)")
		c.Flags().BoolVar(&historyFailed, "failed", false, "only failed evaluations")
	}
	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 30*24*time.Hour, "delete entries older than this")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	limit := historyLimit
	if limit <= 0 {
		limit = appConfig.History.Limit
	}

	entries, err := store.List(cmd.Context(), history.Filter{
		OnlyFailed: historyFailed,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No evaluations recorded.")
		return nil
	}

	for _, e := range entries {
		outcome := fmt.Sprintf("= %d", e.Value)
		if e.Failed() {
			outcome = "Error: " + e.ErrorMessage
		}
		fmt.Fprintf(out, "%s  %-24s %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Input, outcome)
	}
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:     %d\n", stats.Total)
	fmt.Fprintf(out, "Succeeded: %d\n", stats.Succeeded)
	fmt.Fprintf(out, "Failed:    %d\n", stats.Failed)

	codes := make([]string, 0, len(stats.ByErrorCode))
	for code := range stats.ByErrorCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "  %-24s %d\n", code, stats.ByErrorCode[code])
	}

	if !stats.LastEntry.IsZero() {
		fmt.Fprintf(out, "Last:      %s\n", stats.LastEntry.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	n, err := store.Prune(cmd.Context(), historyOlderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries older than %s.\n", n, historyOlderThan)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
	return nil
}
