package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizsorter/internal/logs"
	"quizsorter/internal/master"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var filter logs.Filter
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show entries from the configured log file",
		Long: `Show entries from the JSON log file configured as logging.file.

Use --run with a run ID (or its first characters from "quizsorter history")
to see everything one import logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(cfg.Logging.File)
			if path == "" {
				return errors.New("no log file configured (set logging.file or QUIZSORTER_LOG_FILE)")
			}
			if strings.TrimSpace(filter.Period) != "" {
				filter.Period = master.NormalizePeriod(filter.Period)
			}

			res, err := logs.Tail(path, logs.TailOptions{Offset: -1, Limit: lines, Filter: filter})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON && !follow {
				entries := res.Entries
				if entries == nil {
					entries = []logs.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			for _, entry := range res.Entries {
				writeLogEntry(out, entry)
			}
			if !follow {
				if len(res.Entries) == 0 {
					fmt.Fprintln(out, "No log entries")
				}
				return nil
			}

			err = logs.Follow(cmd.Context(), path, res.Offset, 500*time.Millisecond, filter, func(entry logs.Entry) {
				writeLogEntry(out, entry)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of entries to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries")
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only entries for this run ID or prefix")
	cmd.Flags().StringVarP(&filter.Period, "period", "p", "", "Only entries for this period")
	cmd.Flags().StringVar(&filter.MinLevel, "level", "", "Minimum level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON (ignored with --follow)")
	return cmd
}

func writeLogEntry(w io.Writer, entry logs.Entry) {
	fmt.Fprintln(w, formatLogEntry(entry))
}

func formatLogEntry(entry logs.Entry) string {
	if !entry.Structured {
		return entry.Raw
	}
	var b strings.Builder
	if !entry.Time.IsZero() {
		b.WriteString(entry.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s ", strings.ToUpper(entry.Level))
	if entry.Component != "" {
		b.WriteString(entry.Component)
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)
	if entry.RunID != "" {
		fmt.Fprintf(&b, " (run %s)", shortRunID(entry.RunID))
	}
	return b.String()
}
