package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Classes: bold cyan so they stand out from free slots
	colorClass = color.New(color.FgCyan, color.Bold)

	// Success: green confirmations
	colorSuccess = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120 // seven day columns need room
	}
	return width
}

// isTerminal reports whether stdin is interactive.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatClass formats a class label.
func formatClass(s string) string {
	return colorClass.Sprint(s)
}

// formatSuccess formats a confirmation.
func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
