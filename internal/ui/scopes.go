package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) scopesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the branch, class and year combinations with classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.ensureStore(cmd.Context())
			if err != nil {
				return err
			}
			scopes, err := store.ListScopes(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing scopes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(scopes) == 0 {
				fmt.Fprintln(out, formatMuted("No classes stored yet."))
				return nil
			}
			fmt.Fprintf(out, "%s\n", formatHeader(fmt.Sprintf("%-16s %-10s %-10s", "BRANCH", "CLASS", "YEAR")))
			for _, s := range scopes {
				fmt.Fprintf(out, "%-16s %-10s %-10s\n", s.BranchID, s.ClassID, s.YearID)
			}
			return nil
		},
	}
}
