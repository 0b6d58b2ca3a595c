package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceKind selects where account records come from.
type SourceKind string

const (
	SourceSample SourceKind = "sample"
	SourceCSV    SourceKind = "csv"
	SourceSQLite SourceKind = "sqlite"
)

// Config represents the top-level ledgerview.yaml configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig identifies the account source.
type SourceConfig struct {
	Kind   SourceKind `yaml:"kind"`
	Path   string     `yaml:"path,omitempty"`
	Strict bool       `yaml:"strict"`
}

// ServerConfig controls the dashboard API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Environment variables that override the file.
const (
	EnvSource     = "LEDGERVIEW_SOURCE"
	EnvSourcePath = "LEDGERVIEW_SOURCE_PATH"
	EnvAddr       = "LEDGERVIEW_ADDR"
	EnvLogLevel   = "LEDGERVIEW_LOG_LEVEL"
)

// Load reads a ledgerview.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config that serves the sample chart.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind: SourceSample,
		},
		Server: ServerConfig{
			Addr: ":9999",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays the LEDGERVIEW_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvSource); v != "" {
		cfg.Source.Kind = SourceKind(v)
	}
	if v := os.Getenv(EnvSourcePath); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the source settings.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceSample:
	case SourceCSV, SourceSQLite:
		if c.Source.Path == "" {
			return fmt.Errorf("source %q requires a path", c.Source.Kind)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	return nil
}
