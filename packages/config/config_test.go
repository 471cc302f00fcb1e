package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fetchkit.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"timeout": 5000,
		"validateSSL": false,
		"headers": {"Authorization": "Bearer token"}
	}`), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Timeout)
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, "Bearer token", cfg.Headers["Authorization"])
	assert.False(t, cfg.GetNoColor())
}

func TestFindAndLoadConfig_MissingFallsBackToDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 30000, cfg.Timeout)
	assert.True(t, cfg.GetValidateSSL())
}

func TestFindAndLoadConfig_FindsDotfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".fetchkit.config.json"), []byte(`{"proxy": "http://localhost:8080"}`), 0o644))

	cfg, err := FindAndLoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Proxy)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
