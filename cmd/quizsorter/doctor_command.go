package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quizsorter/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the history database and the master store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, openErr := ctx.openStore(cmd.Context(), logger)
			results := preflight.RunAll(cmd.Context(), cfg, store, openErr)

			if asJSON {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := make([]string, 0, len(results))
				for _, r := range results {
					lines = append(lines, renderStatusLine(r.Name, passFail(r.Passed), r.Detail, colorize))
				}
				writeSection(out, "quizsorter doctor", colorize, lines...)
			}
			if !preflight.Passed(results) {
				return errors.New("one or more checks failed")
			}
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), "All checks passed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
