package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Table names.
const (
	profilesTable      = "profiles"
	sessionEventsTable = "session_events"
	roundEventsTable   = "round_events"
	llmRequestsTable   = "llm_requests"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// eventColumns are shared by every event table: a global sequence number
// and a unix-millisecond timestamp.
const eventColumns = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	ts INTEGER NOT NULL,`

var tables = []string{
	`CREATE TABLE IF NOT EXISTS ` + sequenceTable + ` (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	next_val INTEGER NOT NULL DEFAULT 1
)`,
	`CREATE TABLE IF NOT EXISTS ` + profilesTable + ` (
	name TEXT PRIMARY KEY,
	level INTEGER NOT NULL DEFAULT 1,
	total_xp INTEGER NOT NULL DEFAULT 0,
	current_streak INTEGER NOT NULL DEFAULT 0,
	best_streak INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS ` + sessionEventsTable + ` (` + eventColumns + `
	session_id TEXT NOT NULL,
	player TEXT NOT NULL,
	action TEXT NOT NULL,
	mode TEXT NOT NULL,
	level INTEGER NOT NULL,
	rounds INTEGER NOT NULL DEFAULT 0,
	correct INTEGER NOT NULL DEFAULT 0,
	xp INTEGER NOT NULL DEFAULT 0,
	duration_secs INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + roundEventsTable + ` (` + eventColumns + `
	day TEXT NOT NULL,
	session_id TEXT NOT NULL,
	player TEXT NOT NULL,
	round INTEGER NOT NULL,
	mode TEXT NOT NULL,
	tier TEXT NOT NULL,
	exercise_key TEXT NOT NULL,
	prompt TEXT NOT NULL DEFAULT '',
	answer TEXT NOT NULL DEFAULT '',
	solution TEXT NOT NULL,
	correct BOOLEAN NOT NULL,
	timed_out BOOLEAN NOT NULL,
	remaining INTEGER NOT NULL,
	xp INTEGER NOT NULL,
	streak INTEGER NOT NULL,
	hints INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + llmRequestsTable + ` (` + eventColumns + `
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL DEFAULT '',
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success BOOLEAN NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	request_body TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
)`,
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS round_events_player_day ON round_events (player, day)",
	"CREATE INDEX IF NOT EXISTS session_events_player ON session_events (player)",
}

// migrate creates any missing table. Columns are never altered.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, t := range tables {
		if err := drv.Exec(ctx, t, []any{}, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, idx := range indexes {
		if err := drv.Exec(ctx, idx, []any{}, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
