package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "http://localhost:4021", cfg.Bridge.URL)
	assert.Equal(t, 30*time.Second, cfg.Bridge.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SPLITPAY_SERVER_PORT", "9090")
	t.Setenv("SPLITPAY_BRIDGE_URL", "http://bridge:4021")
	t.Setenv("SPLITPAY_SEED_DEMO_DATA", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://bridge:4021", cfg.Bridge.URL)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8181\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
