package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/export"
)

const (
	formatText = "text"
	formatXLSX = "xlsx"
)

var extensions = map[string]string{
	formatText: ".txt",
	formatXLSX: ".xlsx",
}

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
		copyTo bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the week as text or a spreadsheet",
		Long: `Export the selected week.

The text format is the plain listing shared with parents; --copy puts it
on the clipboard. The xlsx format writes a spreadsheet where each class
is a merged block over its time slots.

Use --output=- to write to stdout.

Example:
  classboard export --copy
  classboard export --format=xlsx
  classboard export --format=text --output=- --date=2025-01-13`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatXLSX {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatXLSX)
			}
			if copyTo && format != formatText {
				return fmt.Errorf("--copy only supports the %s format", formatText)
			}

			b, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}

			if copyTo {
				if err := export.CopyText(b.Scope(), b.Window(), b.Schedule()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatSuccess("Copied timetable to clipboard."))
				return nil
			}

			var buf bytes.Buffer
			if err := writeExport(&buf, b, format); err != nil {
				return err
			}

			if output == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if output == "" {
				output = export.FileName(b.Scope(), b.Window(), extensions[format])
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.log.Info().Str("path", output).Str("format", format).Msg("exported week")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatSuccess("Wrote"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Export format (text or xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default derived from scope and week, - for stdout)")
	cmd.Flags().BoolVar(&copyTo, "copy", false, "Copy the text export to the clipboard")

	return cmd
}

func writeExport(w io.Writer, b *board.Board, format string) error {
	if format == formatXLSX {
		return export.XLSX(w, b.Scope(), b.Window(), b.Grid())
	}
	return export.Text(w, b.Scope(), b.Window(), b.Schedule())
}
