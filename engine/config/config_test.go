package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvOverrides(t *testing.T) {
	c := FromEnv(envMap(map[string]string{
		"TANKARENA_SEED":           "42",
		"TANKARENA_LIVES":          "5",
		"TANKARENA_TICK_RATE":      "30",
		"TANKARENA_AUDIO_ENABLED":  "false",
		"TANKARENA_MASTER_VOLUME":  "25",
		"TANKARENA_HIGHSCORE_FILE": "/tmp/hs.json",
		"TANKARENA_DATABASE_URL":   "postgres://localhost/arena",
		"TANKARENA_SCALE":          "1.5",
	}))
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, 5, c.Lives)
	assert.Equal(t, 30.0, c.TickRate)
	assert.False(t, c.AudioEnabled)
	assert.Equal(t, 0.25, c.Volume())
	assert.Equal(t, "/tmp/hs.json", c.HighScoreFile)
	assert.Equal(t, "postgres://localhost/arena", c.DatabaseURL)
	assert.Equal(t, 1.5, c.Scale)
}

func TestFromEnvIgnoresInvalid(t *testing.T) {
	c := FromEnv(envMap(map[string]string{
		"TANKARENA_LIVES":         "0",
		"TANKARENA_TICK_RATE":     "fast",
		"TANKARENA_MASTER_VOLUME": "150",
		"TANKARENA_SEED":          "  ",
	}))
	assert.Equal(t, Default(), c)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.env")
	require.NoError(t, os.WriteFile(path, []byte("TANKARENA_LIVES=7\n"), 0644))
	t.Setenv("TANKARENA_LIVES", "")
	os.Unsetenv("TANKARENA_LIVES")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Lives)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
