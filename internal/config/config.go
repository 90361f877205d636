// Package config loads, validates and persists the countrydex configuration.
//
// Values are resolved in order: built-in defaults, ~/.countrydex/config.yaml
// (shallow-merged per top-level section), then COUNTRYDEX_* environment
// variables. CLI flags are applied last by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/countrydex/pkg/version"
)

// Defaults.
const (
	SchemaVersion        = "1.0.0"
	supportedSchema      = ">= 1.0.0, < 2.0.0"
	DefaultSourceURL     = "https://restcountries.com/v2/all"
	DefaultSourceTimeout = "30s"
	DefaultServerAddr    = ":8080"
	DefaultOutputFormat  = "table"
	configDirName        = ".countrydex"
	configFileName       = "config.yaml"
	outputTypeFile       = "file"
)

// Environment variables consulted by applyEnv.
const (
	EnvHome      = "COUNTRYDEX_HOME"
	EnvSourceURL = "COUNTRYDEX_SOURCE_URL"
	EnvTimeout   = "COUNTRYDEX_TIMEOUT"
	EnvAddr      = "COUNTRYDEX_ADDR"
	EnvLogLevel  = "COUNTRYDEX_LOG_LEVEL"
	EnvLogFormat = "COUNTRYDEX_LOG_FORMAT"
)

// Config errors.
var (
	ErrInvalidKey     = errors.New("unknown configuration key")
	ErrInvalidValue   = errors.New("invalid configuration value")
	ErrUnsupportedVer = errors.New("unsupported configuration schema version")
)

// Config is the full countrydex configuration.
type Config struct {
	Version string        `yaml:"version"`
	Source  SourceConfig  `yaml:"source"`
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	path string
}

// SourceConfig describes where the country dataset comes from.
type SourceConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// ServerConfig configures the browser surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration with no file or env applied.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Source: SourceConfig{
			URL:     DefaultSourceURL,
			Timeout: DefaultSourceTimeout,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		path: DefaultPath(),
	}
}

// New returns the effective configuration: defaults, the config file when it
// exists and parses, then environment overrides. A broken file is ignored so
// that the CLI stays usable; `config validate` reports it.
func New() *Config {
	cfg := Default()
	if _, err := os.Stat(cfg.path); err == nil {
		_ = ShallowMergeYAML(cfg, cfg.path)
	}
	cfg.applyEnv()
	return cfg
}

// Load reads the config file at path on top of defaults. Unlike New it
// reports file errors and does not apply the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dir returns the countrydex home directory.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(userHome, configDirName)
}

// DefaultPath returns the path of the user config file.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}

// Path returns the file this config is saved to.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to its path, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// SourceTimeout parses Source.Timeout, falling back to the default.
func (c *Config) SourceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultSourceTimeout)
	}
	return d
}

// Validate checks the schema version and every typed field.
func (c *Config) Validate() error {
	ok, err := version.Satisfies(c.Version, supportedSchema)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedVer, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedVer, c.Version, supportedSchema)
	}
	if c.Source.URL == "" {
		return fmt.Errorf("%w: source.url must not be empty", ErrInvalidValue)
	}
	if d, parseErr := time.ParseDuration(c.Source.Timeout); parseErr != nil || d <= 0 {
		return fmt.Errorf("%w: source.timeout %q", ErrInvalidValue, c.Source.Timeout)
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: output.default_format %q", ErrInvalidValue, c.Output.DefaultFormat)
	}
	switch c.Logging.Format {
	case "json", "console", "text":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format)
	}
	return nil
}

// keyAccessors maps dotted keys to the field they read and write.
//
//nolint:gochecknoglobals // Lookup table.
var keyAccessors = map[string]func(c *Config) *string{
	"source.url":            func(c *Config) *string { return &c.Source.URL },
	"source.timeout":        func(c *Config) *string { return &c.Source.Timeout },
	"server.addr":           func(c *Config) *string { return &c.Server.Addr },
	"output.default_format": func(c *Config) *string { return &c.Output.DefaultFormat },
	"logging.level":         func(c *Config) *string { return &c.Logging.Level },
	"logging.format":        func(c *Config) *string { return &c.Logging.Format },
	"logging.file":          func(c *Config) *string { return &c.Logging.File },
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(keyAccessors))
	for k := range keyAccessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for a dotted key such as "source.url".
func (c *Config) Get(key string) (string, error) {
	acc, ok := keyAccessors[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return *acc(c), nil
}

// Set assigns value to a dotted key and re-validates. The previous value is
// restored when validation fails.
func (c *Config) Set(key, value string) error {
	acc, ok := keyAccessors[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	field := acc(c)
	prev := *field
	*field = value
	if err := c.Validate(); err != nil {
		*field = prev
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Source.Timeout = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}
