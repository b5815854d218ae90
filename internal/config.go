package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the composer
type Config struct {
	StorageBackend    string        `yaml:"storage_backend"`
	StoragePath       string        `yaml:"storage_path,omitempty"`
	FragmentDelay     time.Duration `yaml:"fragment_delay"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	MentionLimit      int           `yaml:"mention_limit"`
	SuggestionLimit   int           `yaml:"suggestion_limit"`
	MentionLatency    time.Duration `yaml:"mention_latency"`
	SuggestionLatency time.Duration `yaml:"suggestion_latency"`
	DropdownHeight    int           `yaml:"dropdown_height"`
	LogLevel          string        `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		StorageBackend:    BackendSQLite,
		FragmentDelay:     25 * time.Millisecond,
		SettleDelay:       100 * time.Millisecond,
		MentionLimit:      20,
		SuggestionLimit:   10,
		MentionLatency:    150 * time.Millisecond,
		SuggestionLatency: 200 * time.Millisecond,
		DropdownHeight:    8,
		LogLevel:          "info",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &StorageError{Path: path, Op: "read", Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), &ParseError{Source: "config", Key: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), &ParseError{Source: "config", Key: path, Err: err}
	}

	return cfg, nil
}

// SaveConfig writes the config as YAML, creating parent directories
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine cannot work with
func (c Config) Validate() error {
	if c.StorageBackend != BackendSQLite && c.StorageBackend != BackendBolt {
		return fmt.Errorf("storage_backend must be %q or %q, got %q", BackendSQLite, BackendBolt, c.StorageBackend)
	}
	if c.FragmentDelay < 0 || c.SettleDelay < 0 || c.MentionLatency < 0 || c.SuggestionLatency < 0 {
		return errors.New("delays must not be negative")
	}
	if c.MentionLimit <= 0 {
		return fmt.Errorf("mention_limit must be positive, got %d", c.MentionLimit)
	}
	if c.SuggestionLimit <= 0 {
		return fmt.Errorf("suggestion_limit must be positive, got %d", c.SuggestionLimit)
	}
	if c.DropdownHeight <= 0 {
		return fmt.Errorf("dropdown_height must be positive, got %d", c.DropdownHeight)
	}
	return nil
}
