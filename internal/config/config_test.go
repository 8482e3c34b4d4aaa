package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB", "WORDS", "SEED", "LOG_LEVEL", "LOG_FILE", "PLAYER", "RECENT_WINDOW"} {
		t.Setenv(Prefix+k, "")
		os.Unsetenv(Prefix + k)
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultPlayer, cfg.Player)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 20, cfg.RecentWindow)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIZQUEST_PLAYER", "mia")
	t.Setenv("WIZQUEST_SEED", "42")
	t.Setenv("WIZQUEST_LOG_LEVEL", "debug")
	t.Setenv("WIZQUEST_DB", "/tmp/wq.db")
	t.Setenv("WIZQUEST_RECENT_WINDOW", "5")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "mia", cfg.Player)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/tmp/wq.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.RecentWindow)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WIZQUEST_PLAYER=leo\nWIZQUEST_SEED=7\n"), 0o644))
	t.Setenv("WIZQUEST_SEED", "9")
	t.Cleanup(func() { os.Unsetenv("WIZQUEST_PLAYER") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "leo", cfg.Player)
	assert.Equal(t, uint64(9), cfg.Seed, "process environment wins over the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"seed not a number", "SEED", "abc"},
		{"negative seed", "SEED", "-1"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"zero window", "RECENT_WINDOW", "0"},
		{"missing words file", "WORDS", "/nonexistent/words.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(Prefix+tt.key, tt.value)
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestOpenLogger(t *testing.T) {
	cfg := &Config{LogLevel: slog.LevelInfo, LogFile: filepath.Join(t.TempDir(), "logs", "wq.log")}
	logger, closer, err := cfg.OpenLogger()
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("round resolved", "xp", 26)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "round resolved")
	assert.Contains(t, string(data), "xp=26")
	assert.NotContains(t, string(data), "hidden")
}

func TestOpenLogger_Discard(t *testing.T) {
	cfg := &Config{}
	logger, closer, err := cfg.OpenLogger()
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closer.Close())
}
