package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quizsorter/internal/config"
	"quizsorter/internal/resolve"
	"quizsorter/internal/roster"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var attendance string
	var threshold int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve --attendance FILE NAME...",
		Short: "Explain how submitted names resolve against an attendance list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(attendance)
			if err != nil {
				return fmt.Errorf("resolve attendance path: %w", err)
			}
			members, err := roster.Load(path)
			if err != nil {
				return err
			}
			if threshold < 0 {
				threshold = cfg.Matching.FuzzyThreshold
			}
			resolver := resolve.New(members.Index, resolve.WithThreshold(threshold))

			type result struct {
				Name    string         `json:"name"`
				Matched bool           `json:"matched"`
				Match   *resolve.Match `json:"match,omitempty"`
			}
			results := make([]result, len(args))
			for i, name := range args {
				match, ok := resolver.Resolve(name)
				results[i] = result{Name: name, Matched: ok}
				if ok {
					results[i].Match = &match
				}
			}
			if asJSON {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, len(results))
			for i, r := range results {
				if r.Match == nil {
					rows[i] = []string{r.Name, "(unmatched)", "", "", ""}
					continue
				}
				rows[i] = []string{r.Name, r.Match.Canonical, string(r.Match.Strategy), r.Match.Key, strconv.Itoa(r.Match.Score)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				fmt.Sprintf("threshold %d", resolver.Threshold()),
				[]string{"Submitted", "Student", "Strategy", "Key", "Score"},
				rows,
				rightAlignedFrom(4, 5),
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&attendance, "attendance", "a", "", "Attendance list to resolve against")
	cmd.Flags().IntVar(&threshold, "threshold", -1, "Fuzzy match threshold (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("attendance")
	return cmd
}
