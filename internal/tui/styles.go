package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared lipgloss palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("229")
	ColorSelected  = lipgloss.Color("57")
	ColorSpinner   = lipgloss.Color("205")
	ColorWarning   = lipgloss.Color("214")
)

// Styles.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorHeader)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarning)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected)

	ListHeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			BorderBottom(true).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedButtonStyle = ButtonStyle.
				BorderForeground(ColorHighlight).
				Foreground(ColorHighlight).
				Bold(true)
)
