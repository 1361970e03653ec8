package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/procflow/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROCFLOW_CONFIG_PATH",
		"PROCFLOW_SERVER_HOST",
		"PROCFLOW_SERVER_PORT",
		"PROCFLOW_ALLOWED_ORIGINS",
		"PROCFLOW_STORE_BACKEND",
		"PROCFLOW_STORE_PATH",
		"PROCFLOW_UPLOADS_DIR",
		"PROCFLOW_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "json", cfg.Store.Backend)
	require.Equal(t, "data/processes.json", cfg.Store.Path)
	require.Equal(t, "data/uploads", cfg.Uploads.Dir)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCFLOW_SERVER_PORT", "9090")
	t.Setenv("PROCFLOW_STORE_BACKEND", "sqlite")
	t.Setenv("PROCFLOW_STORE_PATH", "/tmp/procs.db")
	t.Setenv("PROCFLOW_ALLOWED_ORIGINS", "http://localhost:3000,https://office.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "/tmp/procs.db", cfg.Store.Path)
	require.Equal(t, []string{"http://localhost:3000", "https://office.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 3001
store:
  backend: sqlite
  path: office.db
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PROCFLOW_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 3001, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "office.db", cfg.Store.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCFLOW_SERVER_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROCFLOW_STORE_BACKEND", "mongodb")

	_, err := config.Load()
	require.Error(t, err)
}
