package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/timetable"
)

func (a *App) editCmd() *cobra.Command {
	var (
		day       string
		subject   string
		professor string
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change a class",
		Long: `Change the subject, professor, day or times of a class.

Only the flags you pass are changed. The result is re-checked against the
other classes of its day; the class never conflicts with itself.

Example:
  classboard edit 5f1c... --start=09:30 --end=11:00
  classboard edit 5f1c... --day=thu --professor="Dr. Iyer"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := a.ensureStore(cmd.Context()); err != nil {
				return err
			}

			b, existing, err := a.boardForEntry(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}

			d := board.DraftFrom(existing)
			flags := cmd.Flags()
			if flags.Changed("day") {
				if d.Day, err = timetable.ParseWeekday(day); err != nil {
					return err
				}
			}
			if flags.Changed("subject") {
				d.Subject = subject
			}
			if flags.Changed("professor") {
				d.Professor = professor
			}
			if flags.Changed("start") {
				d.StartTime = start
			}
			if flags.Changed("end") {
				d.EndTime = end
			}
			if d == board.DraftFrom(existing) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}

			e, err := b.Update(cmd.Context(), id, d)
			if err != nil {
				return explain(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s-%s\n",
				formatSuccess("Updated class"),
				formatClass(e.Subject),
				e.Date.Format("Mon Jan 2"),
				e.StartTime,
				e.EndTime,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Move to another weekday of the same week (mon..sun)")
	cmd.Flags().StringVar(&subject, "subject", "", "New subject")
	cmd.Flags().StringVar(&professor, "professor", "", "New professor")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")

	return cmd
}
