package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo writes append-only event rows. Every row carries a sequence
// number from the shared counter and a unix-millisecond timestamp.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequence
	now func() time.Time
}

// column is one named value of a row being inserted.
type column struct {
	name  string
	value any
}

// insert appends a row to table. A zero ts means now.
func (r *eventRepo) insert(ctx context.Context, table string, ts time.Time, cols ...column) error {
	n, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if ts.IsZero() {
		ts = r.now()
	}

	names := []string{"sequence", "ts"}
	values := []any{n, ts.UnixMilli()}
	for _, c := range cols {
		names = append(names, c.name)
		values = append(values, c.value)
	}
	query, args := builder().Insert(table).Columns(names...).Values(values...).Query()
	return r.drv.Exec(ctx, query, args, nil)
}

// scanAll runs sel and scans every row with scan.
func scanAll[T any](ctx context.Context, drv *entsql.Driver, sel *entsql.Selector, scan func(*entsql.Rows, *T) error) ([]T, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var v T
		if err := scan(&rows, &v); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// apply narrows sel to the sequence and time window and caps the rows.
func (o QueryOpts) apply(sel *entsql.Selector) *entsql.Selector {
	var where []*entsql.Predicate
	if o.After > 0 {
		where = append(where, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		where = append(where, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		where = append(where, entsql.GTE("ts", o.From.UnixMilli()))
	}
	if !o.To.IsZero() {
		where = append(where, entsql.LTE("ts", o.To.UnixMilli()))
	}
	if len(where) > 0 {
		sel.Where(entsql.And(where...))
	}
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}
