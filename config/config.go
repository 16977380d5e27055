// SPDX-License-Identifier: MIT

// Package config loads ldematrix settings: built-in defaults, then an
// optional YAML file, then LDEMATRIX_* environment variables (a .env file in
// the working directory is read first when present).
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultWorkers   = 8
	DefaultStorePath = "ldematrix-data"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LDEMATRIX_"

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Store configures result persistence.
type Store struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	// Addr is the listen address for /metrics; empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// Config is the full settings tree.
type Config struct {
	Log     Log     `yaml:"log"`
	Store   Store   `yaml:"store"`
	Metrics Metrics `yaml:"metrics"`

	// Workers bounds the number of concurrent per-case workers.
	Workers int `yaml:"workers"`

	// RefData is a reference table YAML path; empty uses the embedded table.
	RefData string `yaml:"refdata"`

	// SingleSolution stops rearrangement after the first solution.
	SingleSolution bool `yaml:"single_solution"`

	// ExtraBrackets reads input lines in the "[[a b],[c d]]" form.
	ExtraBrackets bool `yaml:"extra_brackets"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:     Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Store:   Store{Path: DefaultStorePath, SyncWrites: true},
		Workers: DefaultWorkers,
	}
}

// LoadEnv reads .env style files into the process environment without
// overriding variables already set. Missing files are ignored.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, name, v, err)
		}
		*dst = b

		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("REFDATA", &c.RefData)
	str("STORE_PATH", &c.Store.Path)
	str("METRICS_ADDR", &c.Metrics.Addr)
	if v, ok := os.LookupEnv(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q: %v", ErrInvalid, EnvPrefix, v, err)
		}
		c.Workers = n
	}
	for name, dst := range map[string]*bool{
		"STORE_IN_MEMORY":   &c.Store.InMemory,
		"STORE_SYNC_WRITES": &c.Store.SyncWrites,
		"SINGLE_SOLUTION":   &c.SingleSolution,
		"EXTRA_BRACKETS":    &c.ExtraBrackets,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("%w: store path is required unless in_memory", ErrInvalid)
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}

	return l, nil
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
