// Package play hosts a practice session for one player: it loads and saves
// the profile, picks the mode of each round, records round and session
// events, and applies level progression.
package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/session"
	"github.com/abhisek/wizquest/internal/store"
)

// LevelXP is the total XP needed per level.
const LevelXP = 200

// LevelForXP returns the level a player with totalXP has earned.
func LevelForXP(totalXP int) int {
	return 1 + max(totalXP, 0)/LevelXP
}

// Playlist decides the mode of each round.
type Playlist struct {
	modes []exercise.Mode
	next  int
}

// Single plays every round in mode.
func Single(mode exercise.Mode) Playlist {
	return Playlist{modes: []exercise.Mode{mode}}
}

// Mixed cycles through every mode in menu order.
func Mixed() Playlist {
	return Playlist{modes: exercise.AllModes()}
}

// Next returns the mode of the next round.
func (p *Playlist) Next() exercise.Mode {
	m := p.modes[p.next%len(p.modes)]
	p.next++
	return m
}

// Label describes the playlist for display.
func (p Playlist) Label() string {
	if len(p.modes) == 1 {
		return p.modes[0].DisplayName()
	}
	return "Mixed"
}

// Deps are the collaborators a Game needs.
type Deps struct {
	Profiles store.ProfileRepo
	Events   store.EventRepo
	Logger   *slog.Logger

	// Session configures the engine. Its Logger defaults to Logger.
	Session session.Options
}

// Game is one running session for one player.
type Game struct {
	Player   string
	Playlist Playlist

	sess     *session.Session
	profiles store.ProfileRepo
	events   store.EventRepo
	log      *slog.Logger
	ended    bool
}

// Start loads (or creates) the player's profile, opens a session at the
// profile's level and records the session start. A positive level
// overrides the stored one.
func Start(ctx context.Context, deps Deps, player string, level int, playlist Playlist) (*Game, error) {
	if deps.Profiles == nil || deps.Events == nil {
		return nil, errors.New("play: profile and event repos are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Session.Logger == nil {
		deps.Session.Logger = deps.Logger
	}

	stored, err := deps.Profiles.Load(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", player, err)
	}
	progress := scoring.NewProgress(player)
	if stored != nil {
		progress = *stored
	}
	if level > 0 {
		progress.Level = level
	}

	g := &Game{
		Player:   player,
		Playlist: playlist,
		sess:     session.New(progress, deps.Session),
		profiles: deps.Profiles,
		events:   deps.Events,
		log:      deps.Logger.With("player", player),
	}

	err = g.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: g.sess.ID,
		Player:    player,
		Action:    "start",
		Mode:      playlist.Label(),
		Level:     progress.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("record session start: %w", err)
	}
	g.log.Info("session started", "session", g.sess.ID, "level", progress.Level, "mode", playlist.Label())
	return g, nil
}

// Session returns the underlying engine session.
func (g *Game) Session() *session.Session { return g.sess }

// Progress returns the player's current progress.
func (g *Game) Progress() scoring.Progress { return g.sess.Progress() }

// NextRound starts a round in the playlist's next mode.
func (g *Game) NextRound() (*session.Round, error) {
	return g.sess.Next(g.Playlist.Next())
}

// RoundResult is what Record reports back to the screen.
type RoundResult struct {
	*session.Outcome

	// LevelUp is set when the round's XP earned a new level.
	LevelUp  bool
	NewLevel int
}

// Record persists a resolved round: the round event, any level change
// and the updated profile. Storage failures are logged and returned but
// leave the session usable.
func (g *Game) Record(ctx context.Context, r *session.Round, out *session.Outcome) (RoundResult, error) {
	res := RoundResult{Outcome: out}
	if out == nil {
		return res, nil
	}

	progress := g.sess.Progress()
	if lvl := LevelForXP(progress.TotalXP); lvl > progress.Level {
		g.sess.SetLevel(lvl)
		res.LevelUp, res.NewLevel = true, lvl
		g.log.Info("level up", "level", lvl, "total_xp", progress.TotalXP)
	}

	var errs []error
	err := g.events.AppendRoundEvent(ctx, store.RoundEventData{
		SessionID:   g.sess.ID,
		Player:      g.Player,
		Round:       r.Number,
		Mode:        r.Mode.String(),
		Tier:        r.Params.Tier.String(),
		ExerciseKey: string(r.Exercise.Key()),
		Prompt:      r.Prompt(),
		Answer:      out.Answer,
		Solution:    out.Solution,
		Correct:     out.Correct,
		TimedOut:    out.TimedOut,
		Remaining:   out.Remaining,
		XP:          out.XPAward,
		Streak:      out.Streak,
		Hints:       out.HintsUsed,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("record round: %w", err))
	}
	if err := g.profiles.Save(ctx, g.sess.Progress()); err != nil {
		errs = append(errs, fmt.Errorf("save profile: %w", err))
	}

	err = errors.Join(errs...)
	if err != nil {
		g.log.Warn("round not persisted", "round", r.Number, "error", err)
	}
	return res, err
}

// End abandons any running round, records the session end and saves the
// profile. It is safe to call more than once; only the first call writes.
func (g *Game) End(ctx context.Context) (*session.Summary, error) {
	g.sess.Abandon()
	sum := g.sess.Summary()
	if g.ended {
		return sum, nil
	}
	g.ended = true

	progress := g.sess.Progress()
	var errs []error
	err := g.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    g.sess.ID,
		Player:       g.Player,
		Action:       "end",
		Mode:         g.Playlist.Label(),
		Level:        progress.Level,
		Rounds:       sum.Rounds,
		Correct:      sum.Correct,
		XP:           sum.XP,
		DurationSecs: int(sum.Duration.Seconds()),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("record session end: %w", err))
	}
	if err := g.profiles.Save(ctx, progress); err != nil {
		errs = append(errs, fmt.Errorf("save profile: %w", err))
	}

	g.log.Info("session ended",
		"session", g.sess.ID,
		"rounds", sum.Rounds,
		"correct", sum.Correct,
		"xp", sum.XP)
	return sum, errors.Join(errs...)
}
