package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/countrydex/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness:
schema version, source URL, timeout, output format and logging format.`,
		Example: `  # Validate current configuration
  countrydex config validate

  # Validate and show the effective values
  countrydex config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path := config.DefaultPath()
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		loaded, loadErr := config.Load(path)
		if loadErr != nil {
			return fmt.Errorf("configuration validation failed: %w", loadErr)
		}
		cfg = loaded
	}

	effective := config.New()
	if err := effective.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed (environment overrides): %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		cmd.Printf("\nFile: %s\n", cfg.Path())
		for _, key := range config.Keys() {
			value, _ := effective.Get(key)
			cmd.Printf("  %s = %s\n", key, value)
		}
	}

	return nil
}
