package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how non-interactive renderers format output.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// DetectOutputMode picks a mode from the flags, NO_COLOR/CI and whether
// stdout is a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain {
		return OutputModePlain
	}
	if forceColor {
		return OutputModeStyled
	}
	if noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	if os.Getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or defaultWidth when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
