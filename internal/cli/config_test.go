package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/worklane/internal/cli"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	getenv := envMap(map[string]string{"HOME": home})

	cfg, err := cli.LoadConfig("", getenv)
	require.NoError(t, err)
	require.NoError(t, cfg.Complete(getenv))

	require.Equal(t, cli.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, cli.StoreFile, cfg.Store.Kind)
	require.Equal(t, filepath.Join(home, ".config", "worklane", "credentials.json"), cfg.Store.Path)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.False(t, cfg.ProactiveRefresh)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
base_url: http://api.example.com
proactive_refresh: true
timeout: 3s
store:
  kind: sqlite
log:
  level: debug
`)
	getenv := envMap(map[string]string{
		"HOME":              dir,
		"WORKLANE_BASE_URL": "http://override.example.com",
	})

	cfg, err := cli.LoadConfig(path, getenv)
	require.NoError(t, err)
	require.NoError(t, cfg.Complete(getenv))

	require.Equal(t, "http://override.example.com", cfg.BaseURL)
	require.True(t, cfg.ProactiveRefresh)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, cli.StoreSQLite, cfg.Store.Kind)
	require.Equal(t, filepath.Join(dir, ".config", "worklane", "credentials.db"), cfg.Store.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_EnvironmentNamesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, "base_url: http://from-env-file\n")

	cfg, err := cli.LoadConfig("", envMap(map[string]string{"WORKLANE_CONFIG": path}))
	require.NoError(t, err)
	require.Equal(t, "http://from-env-file", cfg.BaseURL)
}

func TestLoadConfig_XDGConfigHome(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "worklane"), 0o700))
	writeConfig(t, filepath.Join(xdg, "worklane"), "base_url: http://xdg\n")

	cfg, err := cli.LoadConfig("", envMap(map[string]string{"XDG_CONFIG_HOME": xdg}))
	require.NoError(t, err)
	require.Equal(t, "http://xdg", cfg.BaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	t.Run("explicit file missing", func(t *testing.T) {
		t.Parallel()
		_, err := cli.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, t.TempDir(), "store: [not, a, map\n")
		_, err := cli.LoadConfig(path, envMap(nil))
		require.ErrorContains(t, err, "parsing config")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*cli.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*cli.Config) {}},
		{name: "memory store", mutate: func(c *cli.Config) { c.Store.Kind = cli.StoreMemory }},
		{
			name:    "unknown store",
			mutate:  func(c *cli.Config) { c.Store.Kind = "etcd" },
			wantErr: "unknown store kind",
		},
		{
			name:    "redis without url",
			mutate:  func(c *cli.Config) { c.Store.Kind = cli.StoreRedis },
			wantErr: "redis_url",
		},
		{
			name: "redis with url",
			mutate: func(c *cli.Config) {
				c.Store.Kind = cli.StoreRedis
				c.Store.RedisURL = "redis://localhost:6379/0"
			},
		},
		{
			name:    "empty base url",
			mutate:  func(c *cli.Config) { c.BaseURL = "" },
			wantErr: "base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := cli.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
