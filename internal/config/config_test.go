package config_test

import (
	"os"
	"path/filepath"
	"polyglot/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_ADDR", "")
	os.Unsetenv("NODE_ENV")
	os.Unsetenv("ENVIRONMENT")
	os.Unsetenv("PORT")
	os.Unsetenv("HTTP_ADDR")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.False(t, cfg.IsProduction())
	require.Equal(t, 3000, cfg.HTTP.Port)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, int64(102400), cfg.HTTP.MaxBodyBytes)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Zero(t, cfg.HTTP.RequestTimeout)
	require.False(t, cfg.HTTP.PprofEnabled)
	require.True(t, cfg.HTTP.DocsEnabled)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, ":8081", cfg.Addr())
}

func TestLoad_AddrOverridesPort(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Addr())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")
	t.Setenv("HTTP_ADDR", "")

	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	os.Unsetenv("NODE_ENV")
	t.Setenv("ENVIRONMENT", "")
	os.Unsetenv("ENVIRONMENT")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("HTTP_ADDR", "")
	os.Unsetenv("HTTP_ADDR")

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: staging
http:
  port: 4000
  pprofEnabled: true
gracefulShutdownTimeout: 3s
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Environment)
	require.Equal(t, ":4000", cfg.Addr())
	require.True(t, cfg.HTTP.PprofEnabled)
	require.Equal(t, 3*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
