package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"gopkg.in/yaml.v3"
)

// Store kinds accepted in the config file, $WORKLANE_STORE and --store.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultBaseURL points at a locally running worklane-devauth.
const DefaultBaseURL = "http://localhost:8000"

// Config is the CLI configuration. Values are layered: built-in defaults,
// then the YAML file, then environment variables, then command-line flags.
type Config struct {
	// BaseURL is the backend origin, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// ProactiveRefresh refreshes an expired access token before sending a
	// request instead of waiting for the backend to reject it.
	ProactiveRefresh bool `yaml:"proactive_refresh"`

	// Timeout bounds each HTTP exchange.
	Timeout time.Duration `yaml:"timeout"`

	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

// StoreConfig selects where credentials persist between invocations.
type StoreConfig struct {
	Kind string `yaml:"kind"`

	// Path is the credentials file (file) or database file (sqlite).
	// Defaults to a file under the user config directory.
	Path string `yaml:"path"`

	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: worklane.DefaultTimeout,
		Store: StoreConfig{
			Kind:        StoreFile,
			RedisPrefix: credstore.DefaultRedisPrefix,
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// LoadConfig reads the YAML file at path, or at $WORKLANE_CONFIG when path is
// empty, or at the default location when both are empty. Only the default
// location is optional: an explicitly named file must exist.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getenv("WORKLANE_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = filepath.Join(configDir(getenv), "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg, getenv)
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.BaseURL, "WORKLANE_BASE_URL")
	set(&cfg.Store.Kind, "WORKLANE_STORE")
	set(&cfg.Store.Path, "WORKLANE_STORE_PATH")
	set(&cfg.Store.RedisURL, "WORKLANE_REDIS_URL")
	set(&cfg.Log.Level, "LOG_LEVEL")
	set(&cfg.Log.Format, "LOG_FORMAT")
}

// Complete fills values that depend on other settings and validates the
// result. Call it after every override has been applied.
func (c *Config) Complete(getenv func(string) string) error {
	if c.Timeout <= 0 {
		c.Timeout = worklane.DefaultTimeout
	}
	if c.Store.Path == "" {
		switch c.Store.Kind {
		case StoreFile:
			c.Store.Path = filepath.Join(configDir(getenv), "credentials.json")
		case StoreSQLite:
			c.Store.Path = filepath.Join(configDir(getenv), "credentials.db")
		}
	}
	return c.Validate()
}

// Validate reports settings the CLI cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	switch c.Store.Kind {
	case StoreFile, StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return errors.New("store.redis_url is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store kind %q (want file, sqlite, redis or memory)", c.Store.Kind)
	}
	return nil
}

// configDir is $XDG_CONFIG_HOME/worklane, falling back to ~/.config/worklane.
func configDir(getenv func(string) string) string {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "worklane")
	}
	return filepath.Join(getenv("HOME"), ".config", "worklane")
}
