package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a class",
		Long: `Delete a class after confirmation.

Example:
  classboard delete 5f1c...
  classboard delete 5f1c... --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := a.ensureStore(cmd.Context()); err != nil {
				return err
			}

			b, e, err := a.boardForEntry(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}

			out := cmd.OutOrStdout()
			printEntryRow(out, e)
			if !yes {
				if !isTerminal() {
					return errors.New("refusing to delete without --yes when stdin is not a terminal")
				}
				if !promptYesNo(bufio.NewReader(cmd.InOrStdin()), out, "Delete this class?") {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := b.Delete(cmd.Context(), id); err != nil {
				return explain(err)
			}
			fmt.Fprintf(out, "%s %s\n", formatSuccess("Deleted class"), formatClass(e.Subject))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
