package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wizquest/internal/scoring"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, e SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable, time.Time{},
		column{"session_id", e.SessionID},
		column{"player", e.Player},
		column{"action", e.Action},
		column{"mode", e.Mode},
		column{"level", e.Level},
		column{"rounds", e.Rounds},
		column{"correct", e.Correct},
		column{"xp", e.XP},
		column{"duration_secs", e.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// dayKey is the calendar day a timestamp counts toward, in its location.
func dayKey(t time.Time) string {
	return scoring.StartOfDay(t).Format(time.DateOnly)
}

func (r *eventRepo) AppendRoundEvent(ctx context.Context, e RoundEventData) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}
	err := r.insert(ctx, roundEventsTable, ts,
		column{"day", dayKey(ts)},
		column{"session_id", e.SessionID},
		column{"player", e.Player},
		column{"round", e.Round},
		column{"mode", e.Mode},
		column{"tier", e.Tier},
		column{"exercise_key", e.ExerciseKey},
		column{"prompt", e.Prompt},
		column{"answer", e.Answer},
		column{"solution", e.Solution},
		column{"correct", e.Correct},
		column{"timed_out", e.TimedOut},
		column{"remaining", e.Remaining},
		column{"xp", e.XP},
		column{"streak", e.Streak},
		column{"hints", e.Hints},
	)
	if err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	return nil
}

// DailyStats counts only the XP of correct rounds, so a stored timeout
// never adds to the day.
func (r *eventRepo) DailyStats(ctx context.Context, player string, day time.Time) (scoring.Stats, error) {
	sel := builder().Select(
		entsql.Count("*"),
		"COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN correct THEN xp ELSE 0 END), 0)",
	).
		From(entsql.Table(roundEventsTable)).
		Where(entsql.And(
			entsql.EQ("player", player),
			entsql.EQ("day", dayKey(day)),
		))

	rows, err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows, s *scoring.Stats) error {
		return rows.Scan(&s.TotalSolved, &s.CorrectAnswers, &s.XPEarnedToday)
	})
	if err != nil {
		return scoring.NewStats(day), fmt.Errorf("query daily stats: %w", err)
	}
	stats := scoring.NewStats(day)
	if len(rows) == 1 {
		rows[0].Day = stats.Day
		stats = rows[0]
	}
	return stats, nil
}

func (r *eventRepo) RecentRounds(ctx context.Context, player string, limit int) ([]RoundEventRecord, error) {
	sel := builder().Select(
		"id", "sequence", "ts",
		"session_id", "player", "round", "mode", "tier", "exercise_key", "prompt",
		"answer", "solution", "correct", "timed_out", "remaining", "xp", "streak", "hints",
	).
		From(entsql.Table(roundEventsTable)).
		Where(entsql.EQ("player", player)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	out, err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows, rec *RoundEventRecord) error {
		var ts int64
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts,
			&rec.SessionID, &rec.Player, &rec.Round, &rec.Mode, &rec.Tier, &rec.ExerciseKey, &rec.Prompt,
			&rec.Answer, &rec.Solution, &rec.Correct, &rec.TimedOut, &rec.Remaining, &rec.XP, &rec.Streak, &rec.Hints,
		)
		rec.Timestamp = time.UnixMilli(ts)
		rec.RoundEventData.Timestamp = rec.Timestamp
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query recent rounds: %w", err)
	}
	return out, nil
}
