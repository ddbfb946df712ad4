// Package tui provides the interactive terminal views built on Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared across views.
//
//nolint:gochecknoglobals // Shared lipgloss palette, read-only after init.
var (
	ColorHeader    = lipgloss.Color("39")  // blue
	ColorLabel     = lipgloss.Color("245") // gray
	ColorValue     = lipgloss.Color("252") // near-white
	ColorOK        = lipgloss.Color("42")  // green
	ColorWarning   = lipgloss.Color("214") // orange
	ColorHighlight = lipgloss.Color("213") // pink
	ColorMuted     = lipgloss.Color("241") // dim gray
	ColorBorder    = lipgloss.Color("240") // border gray
)

// Styles shared across views.
//
//nolint:gochecknoglobals // Shared lipgloss styles, read-only after init.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	OKStyle     = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
