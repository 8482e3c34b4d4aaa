// Package store persists player profiles and the round, session and LLM
// event logs in a single SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is an open database.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequence
	now func() time.Time
}

// Option configures Open.
type Option func(*Store)

// WithClock replaces time.Now for event timestamps and profile updates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// pragmas tune SQLite for one local writer.
var pragmas = []string{
	"journal_mode = WAL",
	"busy_timeout = 5000",
	"foreign_keys = ON",
	"synchronous = NORMAL",
}

// Open opens the database at path and creates missing tables.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if err := s.init(context.Background()); err != nil {
		return nil, errors.Join(err, s.drv.Close())
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, "PRAGMA "+p); err != nil {
			return fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	if err := migrate(ctx, s.drv); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequence(ctx, s.drv)
	if err != nil {
		return err
	}
	s.seq = seq
	return nil
}

// DB returns the raw handle.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{drv: s.drv, now: s.now}
}

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq, now: s.now}
}

// DataDir is $XDG_DATA_HOME/wizquest, or ~/.local/share/wizquest.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "wizquest"), nil
}

// DefaultDBPath returns WIZQUEST_DB when set, else wizquest.db in
// DataDir. The parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("WIZQUEST_DB")
	if p == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "wizquest.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a database path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
