package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wizquest/internal/scoring"
)

type profileRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func selectProfiles() *entsql.Selector {
	return builder().Select("name", "level", "total_xp", "current_streak", "best_streak").
		From(entsql.Table(profilesTable))
}

func scanProfile(rows *entsql.Rows, p *scoring.Progress) error {
	return rows.Scan(&p.Name, &p.Level, &p.TotalXP, &p.CurrentStreak, &p.BestStreak)
}

func (r *profileRepo) Load(ctx context.Context, name string) (*scoring.Progress, error) {
	found, err := scanAll(ctx, r.drv, selectProfiles().Where(entsql.EQ("name", name)), scanProfile)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// Save upserts the profile after normalizing it.
func (r *profileRepo) Save(ctx context.Context, p scoring.Progress) error {
	p.Normalize()
	query, args := builder().Insert(profilesTable).
		Columns("name", "level", "total_xp", "current_streak", "best_streak", "updated_at").
		Values(p.Name, p.Level, p.TotalXP, p.CurrentStreak, p.BestStreak, r.now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}
	return nil
}

// Delete removes the profile with its round and session events in one
// transaction. LLM events are not per player and stay.
func (r *profileRepo) Delete(ctx context.Context, name string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}

	for table, col := range map[string]string{
		roundEventsTable:   "player",
		sessionEventsTable: "player",
		profilesTable:      "name",
	} {
		query, args := builder().Delete(table).Where(entsql.EQ(col, name)).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return errors.Join(fmt.Errorf("delete %s from %s: %w", name, table, err), tx.Rollback())
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context) ([]scoring.Progress, error) {
	all, err := scanAll(ctx, r.drv, selectProfiles().OrderBy("name"), scanProfile)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return all, nil
}
