package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/countrydex/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the effective value of a configuration key",
		Example: `  countrydex config get source.url
  countrydex config get server.addr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.New().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. It edits the file only;
// environment overrides are not written back.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration key in the configuration file",
		Example: `  countrydex config set output.default_format json
  countrydex config set source.timeout 10s`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadFileConfig()
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				cmd.Printf("%s = %s\n", key, value)
			}
			return nil
		},
	}
}

// loadFileConfig returns the config file contents on top of defaults,
// without environment overrides. A missing file yields the defaults.
func loadFileConfig() (*config.Config, error) {
	path := config.DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
