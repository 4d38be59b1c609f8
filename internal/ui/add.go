package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/timetable"
)

func (a *App) addCmd() *cobra.Command {
	var (
		day       string
		start     string
		end       string
		professor string
	)

	cmd := &cobra.Command{
		Use:   "add [subject]",
		Short: "Add a class to the week",
		Long: `Add a class to the selected week.

The class is checked against the other classes of the same day before it
is saved: it must start before it ends, last at least 30 minutes and not
overlap another class.

Example:
  classboard add "Maths" --day=mon --start=09:00 --end=10:30 --professor="Ms. Rao"
  classboard add "Physics" --date=2025-01-16 --start=11:00 --end=12:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday, err := a.resolveDay(day)
			if err != nil {
				return err
			}

			b, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}

			e, err := b.Create(cmd.Context(), board.Draft{
				Day:       weekday,
				Subject:   args[0],
				Professor: professor,
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				return explain(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s-%s (%s)\n",
				formatSuccess("Created class"),
				formatClass(e.Subject),
				e.Date.Format("Mon Jan 2"),
				e.StartTime,
				e.EndTime,
				e.ID,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday (mon..sun); defaults to the weekday of --date")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&professor, "professor", "", "Professor teaching the class")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// resolveDay parses --day, falling back to the weekday of --date.
func (a *App) resolveDay(day string) (timetable.Weekday, error) {
	if day != "" {
		return timetable.ParseWeekday(day)
	}
	if a.date != "" {
		d, err := dateutil.ParseDate(a.date)
		if err != nil {
			return 0, err
		}
		return timetable.WeekdayOf(d), nil
	}
	return 0, errors.New("--day or --date is required")
}
