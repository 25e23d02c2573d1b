package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output destinations, swapped in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// paint renders s with style unless color is disabled.
func paint(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if quiet() {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if quiet() {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", paint(successStyle, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if quiet() {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", paint(warningStyle, "⚠"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if quiet() {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", paint(progressStyle, "→"), msg)
}

// printMuted prints a de-emphasized line
func printMuted(msg string) {
	if quiet() {
		return
	}
	fmt.Fprintln(stdout, paint(mutedStyle, msg))
}

// printHeader prints a section header
func printHeader(title string) {
	if quiet() {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", paint(headerStyle, "=== "+title+" ==="))
}

// printError prints an error message to stderr. Errors are shown even in
// quiet mode.
func printError(err error) {
	fmt.Fprintf(stderr, "%s %v\n", paint(errorStyle, "Error:"), err)
}
