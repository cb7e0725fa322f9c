package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "PORT=9090\nJWT_SECRET=abc\nSTORE_DRIVER=memory\nCACHE_ENABLED=true\nCACHE_TTL_SECONDS=30\nRATE_LIMIT_RPS=2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "abc", cfg.JWT.Secret)
	assert.Equal(t, StoreDriverMemory, cfg.App.StoreDriver)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 1, cfg.JWT.ExpiryHours)
	assert.Equal(t, "cineacme", cfg.Metrics.Namespace)
}

func TestLoadConfigFrom_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.App.StoreDriver)
}

func TestLoadConfigFrom_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
