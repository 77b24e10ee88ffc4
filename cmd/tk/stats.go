package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/j-veylop/timekeeper-tui/internal/models"
)

func newStatsCmd(opts *options) *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print tracked time totals",
		Example: `  tk stats
  tk stats --range 30d
  tk stats --range all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRange(rangeName)
			if err != nil {
				return err
			}

			mgr, err := opts.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()

			for _, e := range mgr.StartupErrors() {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}

			printStats(cmd.OutOrStdout(), mgr.Statistics(), r, mgr.History(r), mgr.StoreLocation())
			return nil
		},
	}

	cmd.Flags().StringVarP(&rangeName, "range", "r", "7d", "Days to list: 7d, 14d, 30d or all")
	return cmd
}

// parseRange maps a --range value to a history range.
func parseRange(s string) (models.TimeRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "7", "7d", "":
		return models.TimeRange7Days, nil
	case "14", "14d":
		return models.TimeRange14Days, nil
	case "30", "30d":
		return models.TimeRange30Days, nil
	case "all":
		return models.TimeRangeAllTime, nil
	}
	return 0, fmt.Errorf("invalid range %q: use 7d, 14d, 30d or all", s)
}

func printStats(w io.Writer, sum models.Summary, r models.TimeRange, rows []models.DaySummary, location string) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	cyan.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cyan.Fprintln(w, "TIMEKEEPER")
	cyan.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(w)

	fmt.Fprint(w, "Today:          ")
	green.Fprintf(w, "%s", models.FormatDuration(sum.Today))
	fmt.Fprintf(w, " (%d sessions)\n", sum.SessionsToday)
	fmt.Fprintf(w, "All time:       %s\n", models.FormatDuration(sum.AllTime))
	fmt.Fprintf(w, "Daily average:  %s\n", models.FormatMinutes(sum.DailyAverage()))
	if day, total := sum.PeakDay(); day != "" {
		fmt.Fprintf(w, "Peak day:       %s (%s)\n", day, models.FormatMinutes(total))
	}
	fmt.Fprintln(w)

	cyan.Fprintf(w, "%s\n", r.String())
	if len(rows) == 0 {
		faint.Fprintln(w, "  no tracked time")
	}
	var peak time.Duration
	for _, row := range rows {
		peak = max(peak, row.Total)
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s  %-20s %8s  %d\n", row.Date, bar(row.Total, peak, 20), models.FormatMinutes(row.Total), row.Sessions)
	}
	fmt.Fprintln(w)
	faint.Fprintf(w, "data: %s\n", location)
}

// bar renders d as a plain bar of up to width cells relative to peak.
func bar(d, peak time.Duration, width int) string {
	if peak <= 0 {
		return ""
	}
	n := int(float64(d) / float64(peak) * float64(width))
	if d > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
