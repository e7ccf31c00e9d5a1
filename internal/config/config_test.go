package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"CONFIG_FILE", "LOG_LEVEL", "WORDS_FILE", "OPENING_WORD", "FILTER_MODE", "STRATEGY",
		"SEED", "HEADLESS", "GAME_URL", "HARD_MODE", "PORT", "DB_PATH", "JWT_SECRET", "JWT_EXPIRES_DAYS",
		"CLIENT_ORIGIN", "SESSION_CACHE_SIZE", "DAILY_SALT"} {
		t.Setenv(k, "")
	}
	// keep a stray .env in the working directory out of the test
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "ARSON", cfg.OpeningWord)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wordlebot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
filter_mode: legacy
strategy: entropy
seed: 9
port: "8080"
hard_mode: false
`), 0o644))

	t.Setenv("PORT", "9090")
	t.Setenv("SEED", "11")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.FilterMode)
	assert.Equal(t, "entropy", cfg.Strategy)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, uint64(11), cfg.Seed)
	assert.False(t, cfg.HardMode)
	assert.Equal(t, 1024, cfg.SessionCacheSize)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("STRATEGY=first\n"), 0o644))
	os.Unsetenv("STRATEGY")
	t.Cleanup(func() { os.Unsetenv("STRATEGY") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Strategy)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("FILTER_MODE", "fuzzy")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("FILTER_MODE", "")
	t.Setenv("HEADLESS", "sometimes")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("HEADLESS", "")
	t.Setenv("OPENING_WORD", "TOOLONG")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("OPENING_WORD", "12345")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("OPENING_WORD", "slate")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "slate", cfg.OpeningWord)
}
