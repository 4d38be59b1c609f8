package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/timetable"
)

func (a *App) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's classes",
		Long: `Display today's classes for the selected scope.

This is a quick view. Use 'classboard week' for the full grid.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.date, a.offset = "", 0
			b, err := a.newBoard(cmd.Context())
			if err != nil {
				return err
			}
			now := today()
			b.GoToDate(now)
			if err := b.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(now.Format("Monday, January 2, 2006")))

			entries := b.Schedule().Day(timetable.WeekdayOf(now))
			if len(entries) == 0 {
				fmt.Fprintln(out, "No classes scheduled for today.")
				return nil
			}

			total := 0
			for _, e := range entries {
				printEntryRow(out, e)
				total += e.Duration()
			}
			fmt.Fprintf(out, "\n%d classes, %s of teaching\n", len(entries), FormatDuration(total))
			return nil
		},
	}

	return cmd
}
