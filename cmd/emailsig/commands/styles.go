package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-emailsig/pkg/export"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	headingColor = lipgloss.AdaptiveColor{Light: "#1e3a8a", Dark: "#93c5fd"}

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// PrintNotice writes n as a single styled line, followed by the file path
// when one was produced.
func PrintNotice(w io.Writer, n export.Notice) {
	if n.OK() {
		fmt.Fprintln(w, SuccessStyle.Render("✓ "+n.Message))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render("✗ "+n.Message))
	}
	if n.Path != "" {
		fmt.Fprintln(w, "  "+PathStyle.Render(n.Path))
	}
}

// PrintError reports a command failure.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("error: ")+err.Error())
}
