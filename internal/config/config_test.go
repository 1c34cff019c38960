package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pefman/champion-duel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "duel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, "addr: \":9000\"\nseed: 42\nsession_ttl: 5m\nlog_format: json\n")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("DUEL_SEED", "7")
	t.Setenv("PORT", "8099")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, ":8099", cfg.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "log_format: xml\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	t.Setenv("SESSION_TTL", "not-a-duration")
	_, err = config.Load("")
	assert.Error(t, err)
}
