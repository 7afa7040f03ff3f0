package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quizsorter/internal/config"
	"quizsorter/internal/master"
	"quizsorter/internal/masterstore"
	"quizsorter/internal/tabular"
)

func newMasterCommand(ctx *commandContext) *cobra.Command {
	masterCmd := &cobra.Command{
		Use:   "master",
		Short: "Inspect stored period masters",
	}
	masterCmd.AddCommand(newMasterListCommand(ctx))
	masterCmd.AddCommand(newMasterShowCommand(ctx))
	masterCmd.AddCommand(newMasterExportCommand(ctx))
	return masterCmd
}

func newMasterListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored masters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			keys, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			type entry struct {
				Key      string `json:"key"`
				Period   string `json:"period"`
				Students int    `json:"students"`
				Quizzes  int    `json:"quizzes"`
			}
			entries := make([]entry, 0, len(keys))
			for _, key := range keys {
				period := master.PeriodFromKey(key)
				table, err := loadMaster(cmd.Context(), store, period, key)
				if err != nil {
					return err
				}
				entries = append(entries, entry{Key: key, Period: period, Students: len(table.Rows), Quizzes: len(table.Slots)})
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No masters stored yet")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Period, e.Key, strconv.Itoa(e.Students), strconv.Itoa(e.Quizzes)}
			}
			fmt.Fprintln(out, renderTable("", []string{"Period", "Key", "Students", "Quizzes"}, rows, rightAlignedFrom(2, 4)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newMasterShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show PERIOD",
		Short: "Show the master for a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := openMasterForPeriod(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, masterJSON(table))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMasterTable(table))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newMasterExportCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export PERIOD",
		Short: "Write the master for a period to a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(output)
			if target == "" {
				return errors.New("--output is required")
			}
			target, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			table, err := openMasterForPeriod(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			if err := tabular.WriteFile(target, table.Tabular(), sheetName(table.Period)); err != nil {
				return fmt.Errorf("export master: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d students, %d quizzes) to %s\n",
				master.Key(table.Period), len(table.Rows), len(table.Slots), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (.csv or .xlsx)")
	return cmd
}

func openMasterForPeriod(cmd *cobra.Command, ctx *commandContext, label string) (*master.Table, error) {
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	store, err := ctx.openStore(cmd.Context(), logger)
	if err != nil {
		return nil, err
	}
	period := master.NormalizePeriod(label)
	return loadMaster(cmd.Context(), store, period, master.Key(period))
}

func loadMaster(ctx context.Context, store masterstore.Store, period, key string) (*master.Table, error) {
	data, err := store.Load(ctx, key)
	if errors.Is(err, masterstore.ErrNotFound) {
		return nil, fmt.Errorf("no master stored for %s (run quizsorter import first): %w", period, err)
	}
	if err != nil {
		return nil, err
	}
	return master.Decode(period, data)
}

func renderMasterTable(table *master.Table) string {
	t := table.Tabular()
	return renderTable(table.Period, t.Header, t.Rows, rightAlignedFrom(1, len(t.Header)))
}

type masterRowJSON struct {
	Student string         `json:"student"`
	Scores  map[string]any `json:"scores"`
}

type masterTableJSON struct {
	Period string          `json:"period"`
	Key    string          `json:"key"`
	Slots  []int           `json:"slots"`
	Rows   []masterRowJSON `json:"rows"`
}

// masterJSON keys scores by quiz number; Absent cells are null.
func masterJSON(table *master.Table) masterTableJSON {
	out := masterTableJSON{
		Period: table.Period,
		Key:    master.Key(table.Period),
		Slots:  nonNilInts(table.Slots),
		Rows:   make([]masterRowJSON, len(table.Rows)),
	}
	for i, row := range table.Rows {
		scores := make(map[string]any, len(table.Slots))
		for _, slot := range table.Slots {
			scores[strconv.Itoa(slot)] = row.Score(slot)
		}
		out.Rows[i] = masterRowJSON{Student: row.Student, Scores: scores}
	}
	return out
}
