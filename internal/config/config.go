package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ICSConfig describes a single ICS subscription source.
type ICSConfig struct {
	// URL is the ICS subscription endpoint.
	URL string `yaml:"url"`
	// ID is an internal identifier used for caching and logging.
	ID string `yaml:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name"`
}

// Config is the top-level application configuration.
type Config struct {
	// UTCOffset is the fixed offset (e.g. "-05:00") at which windows
	// are resolved and percentages computed. No timezone-database
	// lookups are performed.
	UTCOffset string `yaml:"utc_offset"`

	// FirstTagOnly is the default for the first-tag-only audit option;
	// CLI flags and prompts override it per run.
	FirstTagOnly bool `yaml:"first_tag_only"`

	// Refresh is the cron schedule used by watch mode.
	Refresh string `yaml:"refresh"`

	// CacheDir holds the ICS fetcher's HTTP cache.
	CacheDir string `yaml:"cache_dir"`

	// ICS is the list of subscribed calendar sources.
	ICS []ICSConfig `yaml:"ics"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		UTCOffset:    "-05:00",
		FirstTagOnly: false,
		Refresh:      "0 18 * * *",
		CacheDir:     DefaultCacheDir(),
		ICS:          []ICSConfig{},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "calaudit", "config.yaml")
}

// DefaultCacheDir returns the per-user ICS cache location.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "calaudit", "ics-cache")
}

// Normalize fills in missing/zero values so partially-filled configs
// still behave correctly.
func (c *Config) Normalize() {
	if c.UTCOffset == "" {
		c.UTCOffset = "-05:00"
	}
	if c.Refresh == "" {
		c.Refresh = "0 18 * * *"
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir()
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
}

// Load reads configuration from the given YAML path. A missing file is
// first-run: a default config is written with 0600 perms and returned.
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

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions, creating the parent directory as needed.
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

	tmp, err := os.CreateTemp(dir, ".calaudit-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
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
