package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/countrydex/internal/logging"
	"github.com/rshade/countrydex/internal/source"
	"github.com/rshade/countrydex/internal/tui"
)

// ErrNotInteractive is returned by browse when stdout is not a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal, use 'countrydex list' instead")

// NewBrowseCmd creates the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	var opts tui.BrowserOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse countries interactively",
		Long: `Opens a full-screen browser over the country dataset.

The list filters on every keystroke while searching. Enter opens a country,
Esc or Backspace goes back, ] goes forward again. In the detail view Tab
moves between border countries and Enter follows one.`,
		Example: `  # Browse everything
  countrydex browse

  # Start with a search and a region selected
  countrydex browse --search united --region Americas`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "initial search text")
	cmd.Flags().StringVar(&opts.Region, "region", "", "initial region filter")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts tui.BrowserOptions) error {
	if !isTerminal(os.Stdout) || tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		return ErrNotInteractive
	}

	ctx := cmd.Context()
	opts.Logger = *logging.FromContext(ctx)
	loader := source.NewOnce(newLoader(ctx))

	model := tui.NewBrowserModel(ctx, loader.Load, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
