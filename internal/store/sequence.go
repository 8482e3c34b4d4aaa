package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const sequenceTable = "event_sequence"

// sequence hands out one increasing number across every event table, so
// a round event and the session event that closed it stay ordered.
type sequence struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequence(ctx context.Context, drv *entsql.Driver) (*sequence, error) {
	query, args := builder().Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequence{drv: drv}, nil
}

// Next claims the next number.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows entsql.Rows
	err := s.drv.Query(ctx,
		"UPDATE "+sequenceTable+" SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1",
		[]any{}, &rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	var n int64
	if !rows.Next() {
		return 0, fmt.Errorf("next sequence: no row")
	}
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, rows.Err()
}
