package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/pool"
	"github.com/abhisek/wizquest/internal/problemgen"
	"github.com/abhisek/wizquest/internal/round"
	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/wordbank"
)

// DefaultRecentWindow is how many recent exercise keys are avoided.
const DefaultRecentWindow = 20

var (
	// ErrRoundInProgress is returned when a new round is requested while
	// the current one has not been resolved.
	ErrRoundInProgress = errors.New("round in progress")

	// ErrEmptyAnswer is returned for a blank submission. The round stays
	// open.
	ErrEmptyAnswer = errors.New("empty answer")

	// ErrNoRound is returned when no round is active.
	ErrNoRound = errors.New("no active round")
)

// ResolveTier maps a player level to its generation parameters.
func ResolveTier(level int) difficulty.Params {
	return difficulty.Resolve(level)
}

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Logger *slog.Logger

	// Rand drives every random choice. Seed it for reproducible sessions.
	Rand *rand.Rand

	Catalog      *wordbank.Catalog
	Generation   problemgen.Config
	RecentWindow int

	// Now is the clock used for day scoping and round timestamps.
	Now func() time.Time
}

// Session serves rounds for one player and keeps their streak and daily
// stats. Rounds are strictly sequential.
type Session struct {
	ID string

	mu       sync.Mutex
	gen      *problemgen.Generator
	recent   *pool.Window[exercise.Key]
	progress scoring.Progress
	stats    scoring.Stats
	current  *Round
	rounds   int
	byMode   map[exercise.Mode]*ModeResult
	started  time.Time

	log *slog.Logger
	now func() time.Time
}

// New starts a session for the given player progress.
func New(progress scoring.Progress, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.Catalog == nil {
		opts.Catalog = wordbank.Default()
	}
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	progress.Normalize()

	id := uuid.New().String()
	now := opts.Now()
	return &Session{
		ID:       id,
		gen:      problemgen.New(opts.Catalog, opts.Rand, opts.Generation),
		recent:   pool.NewWindow[exercise.Key](opts.RecentWindow),
		progress: progress,
		stats:    scoring.NewStats(now),
		byMode:   make(map[exercise.Mode]*ModeResult),
		started:  now,
		log:      opts.Logger.With("session", id),
		now:      opts.Now,
	}
}

// NextExercise generates an exercise without starting a round. Recently
// served equation keys are avoided; a repeat is logged, not fatal.
func (s *Session) NextExercise(p difficulty.Params, mode exercise.Mode) (exercise.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextExercise(p, mode)
}

func (s *Session) nextExercise(p difficulty.Params, mode exercise.Mode) (exercise.Exercise, error) {
	ex, fresh, err := s.gen.Generate(p, mode, s.recent.Contains)
	if err != nil {
		return nil, fmt.Errorf("generate %s exercise: %w", mode, err)
	}
	if !fresh {
		s.log.Warn("exercise repeated", "key", ex.Key(), "tier", p.Tier.String())
	}
	s.recent.Add(ex.Key())
	return ex, nil
}

// Next generates an exercise for the player's current level and starts
// its round. The previous round must be resolved or abandoned.
func (s *Session) Next(mode exercise.Mode) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.Resolved() {
		return nil, ErrRoundInProgress
	}
	s.stats.Roll(s.now())

	p := difficulty.Resolve(s.progress.Level)
	ex, err := s.nextExercise(p, mode)
	if err != nil {
		return nil, err
	}

	s.rounds++
	r := &Round{
		Number:   s.rounds,
		Exercise: ex,
		Mode:     mode,
		Params:   p,
		Started:  s.now(),
		clock:    round.New(p.RoundSecs(mode.IsWord())),
		session:  s,
	}
	s.current = r

	s.log.Debug("round started",
		"round", r.Number,
		"mode", mode.String(),
		"tier", p.Tier.String(),
		"key", ex.Key(),
		"seconds", r.clock.Duration(),
	)
	return r, nil
}

// Current returns the latest round, or nil before the first one.
func (s *Session) Current() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Abandon cancels the current round if it is still playing. No score is
// recorded for it.
func (s *Session) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	cancelled := s.current.clock.Cancel()
	if cancelled {
		s.log.Debug("round abandoned", "round", s.current.Number)
	}
	s.current = nil
	return cancelled
}

// SetLevel changes the level used for subsequent rounds. Levels below 1
// are clamped.
func (s *Session) SetLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Level = max(level, 1)
}

// Progress returns a copy of the player's progress.
func (s *Session) Progress() scoring.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Stats returns a copy of today's aggregate.
func (s *Session) Stats() scoring.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Roll(s.now())
	return s.stats
}

// PoolStatus reports the word pool position for a tier.
func (s *Session) PoolStatus(t difficulty.Tier) (served, size, epoch int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Words.PoolStatus(t)
}

// resolve applies a clock result to progress and stats. The clock
// guarantees it runs once per round.
func (s *Session) resolve(r *Round, res round.Result) *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	xp := scoring.XP(scoring.Input{
		Correct:       res.Correct,
		TimeRemaining: res.Remaining,
		Level:         r.Params.Level,
		Mode:          r.Mode,
	})
	upd := s.progress.Record(res.Correct, xp)
	s.stats.Roll(s.now())
	s.stats.Record(res.Correct, xp)

	mr := s.byMode[r.Mode]
	if mr == nil {
		mr = &ModeResult{Mode: r.Mode}
		s.byMode[r.Mode] = mr
	}
	mr.record(res.Correct, xp)

	out := &Outcome{
		Correct:    res.Correct,
		TimedOut:   res.TimedOut,
		Answer:     res.Answer,
		Remaining:  res.Remaining,
		XPAward:    xp,
		Streak:     upd.Streak,
		BestStreak: upd.Best,
		Milestone:  upd.Milestone,
		Solution:   r.Exercise.Solution(),
		HintsUsed:  r.HintsRevealed(),
	}
	r.outcome.Store(out)

	s.log.Info("round resolved",
		"round", r.Number,
		"mode", r.Mode.String(),
		"key", r.Exercise.Key(),
		"correct", out.Correct,
		"timed_out", out.TimedOut,
		"xp", out.XPAward,
		"streak", out.Streak,
	)
	return out
}
