package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/guardcore-cli/pkg/guardcore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()

	v, cfg, err := Load(Options{HomeDir: home, EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, core.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, core.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "usages", cfg.UsageSegment)
	assert.Equal(t, filepath.Join(home, ".guardcore", "profiles.toml"), cfg.Profiles.Path)
	assert.Equal(t, filepath.Join(home, ".guardcore", "secrets"), cfg.Secrets.Dir)
	assert.Equal(t, BackendAuto, cfg.Secrets.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, cfg.Profiles.Path, v.GetString(KeyProfilesPath))
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".guardcore"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".guardcore", "config.toml"), []byte(`
base_url = "https://panel.example.com/"
timeout = "3s"
usage_segment = "usage"

[secrets]
backend = "file"
`), 0o600))

	_, cfg, err := Load(Options{HomeDir: home, EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "https://panel.example.com/", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "usage", cfg.UsageSegment)
	assert.Equal(t, BackendFile, cfg.Secrets.Backend)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".guardcore"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".guardcore", "config.toml"), []byte(`base_url = "https://file.example.com/"`), 0o600))

	t.Setenv("GUARDCORE_BASE_URL", "https://env.example.com/")
	t.Setenv("GUARDCORE_LOG_LEVEL", "DEBUG")
	t.Setenv("GUARDCORE_PROFILES_PATH", filepath.Join(home, "custom.toml"))

	_, cfg, err := Load(Options{HomeDir: home, EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, "custom.toml"), cfg.Profiles.Path)
}

func TestLoadDotEnvFile(t *testing.T) {
	home := t.TempDir()
	envFile := filepath.Join(home, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GUARDCORE_TIMEOUT=45s\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GUARDCORE_TIMEOUT") })

	_, cfg, err := Load(Options{HomeDir: home, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "timeout", key: "GUARDCORE_TIMEOUT", value: "soon", wantErr: "decode config"},
		{name: "base url", key: "GUARDCORE_BASE_URL", value: "not a url", wantErr: "BaseURL"},
		{name: "backend", key: "GUARDCORE_SECRETS_BACKEND", value: "vault", wantErr: "Backend"},
		{name: "log level", key: "GUARDCORE_LOG_LEVEL", value: "loud", wantErr: "Level"},
		{name: "usage segment", key: "GUARDCORE_USAGE_SEGMENT", value: "stats", wantErr: "UsageSegment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv(tt.key, tt.value)

			_, _, err := Load(Options{HomeDir: home, EnvFile: filepath.Join(home, "missing.env")})
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
