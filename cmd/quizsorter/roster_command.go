package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quizsorter/internal/config"
	"quizsorter/internal/roster"
)

func newRosterCommand() *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Attendance list utilities",
	}
	rosterCmd.AddCommand(newRosterCheckCommand())
	return rosterCmd
}

func newRosterCheckCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "check FILE",
		Short:       "Parse an attendance list and report key collisions",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve attendance path: %w", err)
			}
			members, err := roster.Load(path)
			if err != nil {
				return err
			}
			collisions := members.Index.Collisions()

			if asJSON {
				type report struct {
					Students   []roster.Identity  `json:"students"`
					LookupKeys int                `json:"lookup_keys"`
					Collisions []roster.Collision `json:"collisions"`
				}
				return writeJSON(cmd, report{
					Students:   members.Identities,
					LookupKeys: members.Index.Len(),
					Collisions: collisions,
				})
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, len(members.Identities))
			for i, id := range members.Identities {
				rows[i] = []string{strconv.Itoa(i + 1), id.Last, id.Middle, id.First, id.Nickname, id.ID}
			}
			fmt.Fprintln(out, renderTable(
				fmt.Sprintf("%d students, %d lookup keys", len(members.Identities), members.Index.Len()),
				[]string{"#", "Last", "Middle", "First", "Nickname", "ID"},
				rows,
				[]columnAlignment{alignRight},
			))
			if len(collisions) == 0 {
				fmt.Fprintln(out, "No lookup key collisions")
				return nil
			}
			crow := make([][]string, len(collisions))
			for i, c := range collisions {
				crow[i] = []string{c.Key, c.Previous, c.Current}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable("Collisions (later line wins)", []string{"Key", "Previous", "Now resolves to"}, crow, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
