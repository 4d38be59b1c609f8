package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the week's classes with their IDs",
		Long: `List every class of the selected week, day by day, sorted by start time.

The trailing column is the class ID used by edit and delete.`,
		Example: `  classboard list
  classboard list --offset=-1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s · %s ===\n\n", b.Window().Label(), b.Scope())
			printSchedule(out, b.Window(), b.Schedule())
			return nil
		},
	}

	return cmd
}
