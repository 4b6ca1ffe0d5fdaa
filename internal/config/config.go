// Package config provides typed configuration for patternlab.
//
// Configuration is layered, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. TOML config file (optional; a missing file is not an error)
//  3. Environment variables with the PATTERNLAB_ prefix
//
// Durations are kept as strings in the file format ("500ms") and parsed by
// accessor methods, so a bad value surfaces through Validate.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/patternlab/internal/config/loader"
	"github.com/dshills/patternlab/internal/logging"
)

// ErrValidationFailed indicates one or more settings are out of range.
var ErrValidationFailed = errors.New("validation failed")

// Config is the full patternlab configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
	IDGen   IDGenConfig   `toml:"idgen"`
	Market  MarketConfig  `toml:"market"`
	Health  HealthConfig  `toml:"health"`
	Menu    MenuConfig    `toml:"menu"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "text" or "json".
	Format string `toml:"format"`
}

// HistoryConfig controls the command log.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack. Zero means the history default.
	MaxEntries int `toml:"max_entries"`
}

// IDGenConfig controls ticket ID formatting.
type IDGenConfig struct {
	Width     int    `toml:"width"`
	Separator string `toml:"separator"`
}

// MarketConfig controls the observer demo.
type MarketConfig struct {
	// Debounce is the minimum interval between accepted demand changes.
	Debounce string  `toml:"debounce"`
	BaseFare float64 `toml:"base_fare"`
}

// HealthConfig controls the health-check facade.
type HealthConfig struct {
	// ProbeDir is where the disk probe writes. Empty means os.TempDir().
	ProbeDir string `toml:"probe_dir"`
	DNSHost  string `toml:"dns_host"`
	TCPAddr  string `toml:"tcp_addr"`
	Timeout  string `toml:"timeout"`
	// Database is the sqlite DSN for the database probe.
	Database string `toml:"database"`
}

// MenuConfig controls the interactive menu.
type MenuConfig struct {
	// Pause waits for ENTER after each demo.
	Pause bool `toml:"pause"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: logging.FormatText},
		History: HistoryConfig{MaxEntries: 1000},
		IDGen:   IDGenConfig{Width: 4, Separator: "-"},
		Market:  MarketConfig{Debounce: "500ms", BaseFare: 1.20},
		Health: HealthConfig{
			DNSHost:  "example.com",
			TCPAddr:  "8.8.8.8:53",
			Timeout:  "800ms",
			Database: ":memory:",
		},
		Menu: MenuConfig{Pause: true},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	envPrefix string
	env       loader.Loader
}

// WithFileSystem reads the config file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithEnvLoader replaces the environment layer.
func WithEnvLoader(l loader.Loader) Option {
	return func(o *options) { o.env = l }
}

// Load builds the configuration from defaults, the TOML file at path
// (which may be empty or missing) and the environment, then validates it.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.env == nil {
		o.env = loader.NewEnvLoader(o.envPrefix)
	}

	fileCfg, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
	if err != nil {
		return nil, err
	}
	envCfg, err := o.env.Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	merged := loader.DeepMerge(fileCfg, envCfg)
	cfg := Default()
	if err := decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a raw map on top of cfg. Keys absent from raw keep their
// current values.
func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if !logging.ValidLevel(c.Logging.Level) {
		problems = append(problems, fmt.Sprintf("logging.level: unknown level %q", c.Logging.Level))
	}
	if c.Logging.Format != logging.FormatText && c.Logging.Format != logging.FormatJSON {
		problems = append(problems, fmt.Sprintf("logging.format: must be text or json, got %q", c.Logging.Format))
	}
	if c.History.MaxEntries < 0 {
		problems = append(problems, "history.max_entries: must not be negative")
	}
	if c.IDGen.Width < 1 || c.IDGen.Width > 12 {
		problems = append(problems, fmt.Sprintf("idgen.width: must be between 1 and 12, got %d", c.IDGen.Width))
	}
	if d, err := time.ParseDuration(c.Market.Debounce); err != nil || d < 0 {
		problems = append(problems, fmt.Sprintf("market.debounce: invalid duration %q", c.Market.Debounce))
	}
	if c.Market.BaseFare <= 0 {
		problems = append(problems, "market.base_fare: must be positive")
	}
	if d, err := time.ParseDuration(c.Health.Timeout); err != nil || d <= 0 {
		problems = append(problems, fmt.Sprintf("health.timeout: invalid duration %q", c.Health.Timeout))
	}
	if c.Health.Database == "" {
		problems = append(problems, "health.database: must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}

// DebounceInterval returns the parsed market debounce.
func (m MarketConfig) DebounceInterval() time.Duration {
	d, _ := time.ParseDuration(m.Debounce)
	return d
}

// TimeoutDuration returns the parsed probe timeout.
func (h HealthConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(h.Timeout)
	return d
}

// LoggerConfig converts the logging section into a logger configuration.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(l.Level)
	cfg.Format = l.Format
	return cfg
}
