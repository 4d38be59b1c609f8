package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) weekCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week's timetable grid",
		Long: `Display the selected week as a grid of 30-minute slots, Monday through
Sunday. Rows run from the earliest class start to the latest class end
across the week; a class fills every slot it covers.`,
		Example: `  classboard week --branch=downtown --class=10 --year=2025
  classboard week --offset=1
  classboard week --date=2025-03-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}

			if width <= 0 {
				width = termWidth()
			}
			out := cmd.OutOrStdout()
			window := b.Window()

			header := fmt.Sprintf("WEEK: %s  ·  %s", window.Label(), b.Scope())
			fmt.Fprintf(out, "\n  %s\n", formatHeader(header))
			fmt.Fprintln(out, strings.Repeat("─", len(header)+4))

			printWeekGrid(out, window, b.Grid(), gridColWidth(width))
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Table width (default: terminal width)")
	return cmd
}
