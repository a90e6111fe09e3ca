package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // no config file present
	t.Setenv("CATALOGCTL_API_URL", "https://catalog.example.com")
	t.Setenv("CATALOGCTL_TOKEN", "secret")
	t.Setenv("CATALOGCTL_CACHE", "/tmp/snap.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.example.com", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "/tmp/snap.db", cfg.CachePath)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CATALOGCTL_API_URL", "")
	t.Setenv("CATALOGCTL_TOKEN", "")
	t.Setenv("CATALOGCTL_CACHE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8640", cfg.BaseURL)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CATALOGCTL_API_URL", "")
	t.Setenv("CATALOGCTL_TOKEN", "")
	t.Setenv("CATALOGCTL_CACHE", "")

	require.NoError(t, Save(Config{BaseURL: "http://backend:9000", TimeoutMs: 5000}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestTimeout_Default(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.Timeout())
}
