package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/countrydex/internal/config"
	"github.com/rshade/countrydex/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the countrydex CLI.
// It wires up configuration, logging and tracing, then the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "countrydex",
		Short:   "Browse the countries of the world",
		Long:    "countrydex: search, filter and drill into a public country dataset from the terminal or the browser",
		Version: ver,
		Example: rootCmdExample,
		// main prints the error once.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(""); err != nil {
				return err
			}
			if err := applyGlobalFlags(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("source", "",
		"dataset URL, file:// URL or path (overrides config file and env var)")
	cmd.PersistentFlags().Duration("timeout", 0,
		"dataset fetch timeout (0 = use config default)")

	cmd.AddCommand(
		NewBrowseCmd(), NewListCmd(), NewShowCmd(), NewRegionsCmd(),
		NewServeCmd(), newConfigCmd(),
	)

	return cmd
}

// applyGlobalFlags folds explicitly set persistent flags into the global
// config. Flags override the environment, which overrides the file.
func applyGlobalFlags(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()

	if cmd.Flags().Changed("source") {
		src, _ := cmd.Flags().GetString("source")
		if src == "" {
			return fmt.Errorf("%w: --source must not be empty", config.ErrInvalidValue)
		}
		cfg.Source.URL = src
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout < 0 {
			return fmt.Errorf("timeout must be >= 0, got %s", timeout)
		}
		if timeout > 0 {
			cfg.Source.Timeout = timeout.String()
		}
	}
	return nil
}

const rootCmdExample = `  # Browse interactively
  countrydex browse

  # Start browsing with a search already applied
  countrydex browse --search united --region Americas

  # List European countries as JSON
  countrydex list --region Europe --output json

  # Show one country with its border countries
  countrydex show FRA

  # Serve the browser UI on port 9000
  countrydex serve --addr :9000

  # Use a saved copy of the dataset
  countrydex list --source ./all.json

  # Set configuration values
  countrydex config set output.default_format json`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

// fetchTimeout is how long a single dataset fetch may take.
func fetchTimeout() time.Duration {
	return config.GetGlobalConfig().SourceTimeout()
}
