package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "gameshelf.db", cfg.Database.Path)
	assert.Equal(t, "https://boardgamegeek.com/xmlapi2/", cfg.Catalog.BaseURL)
	assert.Equal(t, 30, cfg.Catalog.RateLimitSleepSeconds)
	assert.Equal(t, 0, cfg.Catalog.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("CATALOG_MAX_RETRIES", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Catalog.MaxRetries)
}

func TestLoadConfigDotEnv(t *testing.T) {
	// Setenv registers the restore; Overload then pulls the file value in.
	t.Setenv("CATALOG_BASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_BASE_URL=http://localhost:9999/xmlapi2/\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/xmlapi2/", cfg.Catalog.BaseURL)
}
