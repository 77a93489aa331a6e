// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette tuned for dark terminals.
const (
	colorAccent  = lipgloss.Color("#7C3AED")
	colorDim     = lipgloss.Color("#6B7280")
	colorOK      = lipgloss.Color("#10B981")
	colorFail    = lipgloss.Color("#EF4444")
	colorCaution = lipgloss.Color("#F59E0B")
	colorLink    = lipgloss.Color("#3B82F6")
	colorFaint   = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle heads `config show` and similar listings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// SubtitleStyle dims secondary text such as "(cached)" or "(exists)".
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorDim)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorOK)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorCaution)
	// CmdStyle marks paths, schema names and commands the user can run.
	CmdStyle      = lipgloss.NewStyle().Foreground(colorLink)
	progressStyle = lipgloss.NewStyle().Foreground(colorFaint)
)

var (
	successIcon = SuccessStyle.Render("✓")
	errorIcon   = ErrorStyle.Render("✗")
	warningIcon = WarningStyle.Render("!")
	arrowIcon   = CmdStyle.Render("→")
)

func renderProgressText(s string) string {
	return progressStyle.Render(s)
}
