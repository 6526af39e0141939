package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/spf13/cobra"
)

var (
	historyType  string
	historyLevel string
	historySince string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lookups and opens from the event log",
	Long: `Show events recorded by jobnav: resolve.ok, resolve.failed, open.ok and
open.failed. Newest events are printed last.`,
	Example: `  jobnav history --since 7d
  jobnav history --type open.failed --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized")
		}

		filter := observability.EventFilter{Type: historyType, Level: historyLevel}
		if historySince != "" {
			since, err := parseSince(historySince)
			if err != nil {
				return err
			}
			filter.Since = &since
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events found.")
			return nil
		}
		if historyLimit > 0 && len(events) > historyLimit {
			events = events[len(events)-historyLimit:]
		}

		for _, e := range events {
			fmt.Fprintf(out, "%s  %-5s  %-14s  %s\n",
				e.Time.Local().Format("2006-01-02 15:04:05"),
				strings.ToUpper(e.Level),
				e.Type,
				e.Message,
			)
		}
		return nil
	},
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}

func init() {
	historyCmd.Flags().StringVar(&historyType, "type", "", "Only show events of this type (e.g. open.failed)")
	historyCmd.Flags().StringVar(&historyLevel, "level", "", "Only show events of this level (info, warn, error)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only show events newer than this (e.g. 24h, 7d)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show at most this many of the newest events")
	rootCmd.AddCommand(historyCmd)
}
