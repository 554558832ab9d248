// Package config loads linkscan settings from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDB          = "LINKSCAN_DB"
	EnvBackend     = "LINKSCAN_BACKEND"
	EnvLogLevel    = "LINKSCAN_LOG_LEVEL"
	EnvDebugAddr   = "LINKSCAN_DEBUG_ADDR"
	EnvConcurrency = "LINKSCAN_CONCURRENCY"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendAuto   = "auto" // SQLite if the database exists, JSON otherwise
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Writer   WriterConfig   `yaml:"writer"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
	Log      LogConfig      `yaml:"log"`
	Browser  BrowserConfig  `yaml:"browser"`
}

// StorageConfig selects the bookmark store backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// WriterConfig tunes bookmark batch writes.
type WriterConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// TimeoutsConfig bounds calls to page sources and the bookmark store.
type TimeoutsConfig struct {
	Scan  time.Duration `yaml:"scan"`
	Store time.Duration `yaml:"store"`
}

// LogConfig configures the logger. File is used while the UI owns the terminal.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// BrowserConfig points at a browser running with remote debugging enabled.
// OpenCommand replaces the platform opener (open, xdg-open) when set.
type BrowserConfig struct {
	DebugAddr   string `yaml:"debugAddr"`
	OpenCommand string `yaml:"openCommand"`
}

// Default returns the default configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "bookmarks.db"),
		},
		Writer: WriterConfig{
			Concurrency: 4,
		},
		Timeouts: TimeoutsConfig{
			Scan:  30 * time.Second,
			Store: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "linkscan.log"),
		},
		Browser: BrowserConfig{
			DebugAddr: "127.0.0.1:9222",
		},
	}
}

// Load reads config from the YAML file at path.
// Creates the file with defaults if it doesn't exist.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	defaults := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// Non-fatal: defaults are usable even if the file can't be written
		_ = Save(path, &defaults)
		data = nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.fillDefaults(defaults)
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that can't be repaired by defaults.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON, BackendAuto:
	default:
		return fmt.Errorf("storage.backend %q: want %s, %s or %s", c.Storage.Backend, BackendSQLite, BackendJSON, BackendAuto)
	}
	if c.Writer.Concurrency < 1 {
		return fmt.Errorf("writer.concurrency must be at least 1, got %d", c.Writer.Concurrency)
	}
	if c.Timeouts.Scan < 0 || c.Timeouts.Store < 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// fillDefaults applies defaults for missing fields.
func (c *Config) fillDefaults(d Config) {
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Writer.Concurrency == 0 {
		c.Writer.Concurrency = d.Writer.Concurrency
	}
	if c.Timeouts.Scan == 0 {
		c.Timeouts.Scan = d.Timeouts.Scan
	}
	if c.Timeouts.Store == 0 {
		c.Timeouts.Store = d.Timeouts.Store
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
	if c.Browser.DebugAddr == "" {
		c.Browser.DebugAddr = d.Browser.DebugAddr
	}
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvDebugAddr); v != "" {
		c.Browser.DebugAddr = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConcurrency, err)
		}
		c.Writer.Concurrency = n
	}
	return nil
}

// DefaultDir returns the config directory: ~/.config/linkscan
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "linkscan"), nil
}

// DefaultPath returns the default config path: ~/.config/linkscan/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
