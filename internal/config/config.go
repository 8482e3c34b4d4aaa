// Package config reads WizQuest settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "WIZQUEST_"

// DefaultPlayer names the profile used when none is configured.
const DefaultPlayer = "player"

// Config holds the application settings.
type Config struct {
	// DBPath overrides the default database location. Empty means default.
	DBPath string

	// WordsFile is an extra catalog merged over the embedded one.
	WordsFile string

	// Seed fixes the random source. Zero seeds from the clock.
	Seed uint64

	LogLevel slog.Level

	// LogFile receives structured logs. Empty discards them.
	LogFile string

	Player string

	// RecentWindow is how many recent equations are avoided.
	RecentWindow int
}

// Load reads an optional .env file (or the given files) and then the
// WIZQUEST_* variables. Variables already set in the environment win
// over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		DBPath:       getEnv("DB", ""),
		WordsFile:    getEnv("WORDS", ""),
		LogFile:      getEnv("LOG_FILE", ""),
		Player:       getEnv("PLAYER", DefaultPlayer),
		RecentWindow: 20,
	}

	var err error
	if cfg.Seed, err = getEnvUint("SEED", 0); err != nil {
		return nil, err
	}
	if cfg.RecentWindow, err = getEnvInt("RECENT_WINDOW", cfg.RecentWindow); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Player) == "" {
		return fmt.Errorf("%sPLAYER cannot be empty", Prefix)
	}
	if c.RecentWindow < 1 {
		return fmt.Errorf("%sRECENT_WINDOW must be > 0", Prefix)
	}
	if c.WordsFile != "" {
		if _, err := os.Stat(c.WordsFile); err != nil {
			return fmt.Errorf("%sWORDS: %w", Prefix, err)
		}
	}
	return nil
}

// OpenLogger builds a text logger writing to LogFile. The returned
// closer releases the file; with no LogFile the logger discards output.
func (c *Config) OpenLogger() (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return l, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(Prefix + key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(Prefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", Prefix, key, err)
	}
	return n, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(Prefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", Prefix, key, err)
	}
	return n, nil
}
