// Package config provides the YAML configuration file holding the tool's
// default knobs. The file is created with defaults on first use.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// TimeoutSeconds bounds the single feed request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent is sent with the feed request.
	UserAgent string `yaml:"user_agent"`

	// ReportDue is the default countdown offset in days; the --report_due
	// flag overrides it per run.
	ReportDue int `yaml:"report_due"`

	// Output is the default path for normalized calendar files.
	Output string `yaml:"output"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		TimeoutSeconds: 30,
		UserAgent:      "icsreport/1.0",
		ReportDue:      0,
		Output:         "correct.ics",
	}
}

// Normalize fills missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.UserAgent == "" {
		c.UserAgent = "icsreport/1.0"
	}
	if c.Output == "" {
		c.Output = "correct.ics"
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (creating
// the parent directory) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".icsreport-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
