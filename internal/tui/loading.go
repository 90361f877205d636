package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loadingText is shown while the dataset is being fetched. A failed fetch
// leaves it on screen.
const loadingText = "Loading..."

// LoadingState drives the spinner shown while waiting for data.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)
	return &LoadingState{spinner: s, message: loadingText}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading returns the loading screen. A nil state renders plain text.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return loadingText
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
