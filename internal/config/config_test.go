package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Enduse PETG", cfg.Material)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, "rows", cfg.TransformLayout)
	assert.Empty(t, cfg.Catalog)
	assert.Empty(t, cfg.Params)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PRINTCOST_LOG_LEVEL", "debug")
	t.Setenv("PRINTCOST_CATALOG", "/etc/printcost/materials.toml")
	t.Setenv("PRINTCOST_MATERIAL", "Proto PLA")
	t.Setenv("PRINTCOST_WORKERS", "8")
	t.Setenv("PRINTCOST_WATCH_DEBOUNCE", "2s")
	t.Setenv("PRINTCOST_PARAMS", "fine.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/printcost/materials.toml", cfg.Catalog)
	assert.Equal(t, "Proto PLA", cfg.Material)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.Equal(t, "fine.toml", cfg.Params)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PRINTCOST_WORKERS", "many")

	_, err := Load()
	assert.Error(t, err)
}
