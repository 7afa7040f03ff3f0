package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizsorter/internal/history"
	"quizsorter/internal/master"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var period string
	var limit int
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			filter := history.Filter{Limit: limit}
			if strings.TrimSpace(period) != "" {
				filter.Period = master.NormalizePeriod(period)
			}
			records, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				if records == nil {
					records = []*history.Record{}
				}
				return writeJSON(cmd, records)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No imports recorded")
				return nil
			}
			rows := make([][]string, len(records))
			for i, rec := range records {
				rows[i] = []string{
					shortRunID(rec.RunID),
					rec.StartedAt.Local().Format("2006-01-02 15:04"),
					rec.Period,
					string(rec.Status),
					strconv.Itoa(rec.Rows),
					strconv.Itoa(rec.Matched),
					strconv.Itoa(rec.Unmatched),
				}
			}
			fmt.Fprintln(out, renderTable("", []string{"Run", "Started", "Period", "Status", "Rows", "Matched", "Unmatched"}, rows, rightAlignedFrom(4, 7)))
			return nil
		},
	}
	historyCmd.Flags().StringVarP(&period, "period", "p", "", "Only show runs for this period")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one import run and its unmatched names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, rec)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := []string{
				renderStatusLine("Run", statusInfo, rec.RunID, colorize),
				renderStatusLine("Status", historyStatusKind(rec.Status), string(rec.Status), colorize),
				renderStatusLine("Master", statusInfo, rec.MasterKey, colorize),
				renderStatusLine("Started", statusInfo, rec.StartedAt.Local().Format(time.RFC3339), colorize),
			}
			if d := rec.Duration(); d > 0 {
				lines = append(lines, renderStatusLine("Duration", statusInfo, d.Round(time.Millisecond).String(), colorize))
			}
			if rec.AttendancePath != "" {
				lines = append(lines, renderStatusLine("Attendance", statusInfo, rec.AttendancePath, colorize))
			}
			if rec.QuizPath != "" {
				lines = append(lines, renderStatusLine("Quiz export", statusInfo, rec.QuizPath, colorize))
			}
			lines = append(lines,
				renderStatusLine("Rows", statusInfo, fmt.Sprintf("%d read, %d matched", rec.Rows, rec.Matched), colorize),
				renderStatusLine("Quizzes", statusInfo, formatSlots(rec.Slots), colorize),
				renderStatusLine("New quizzes", statusInfo, formatSlots(rec.NewSlots), colorize),
				renderStatusLine("Unmatched", warnIf(rec.Unmatched > 0), strconv.Itoa(rec.Unmatched), colorize),
			)
			if rec.ErrorMessage != "" {
				lines = append(lines, renderStatusLine("Error", statusError, rec.ErrorMessage, colorize))
			}
			writeSection(out, rec.Period, colorize, lines...)
			for _, name := range rec.UnmatchedNames {
				fmt.Fprintf(out, "%s- %s\n", statusIndent, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func historyStatusKind(status history.Status) statusKind {
	switch status {
	case history.StatusSucceeded:
		return statusOK
	case history.StatusDryRun:
		return statusWarn
	default:
		return statusError
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
