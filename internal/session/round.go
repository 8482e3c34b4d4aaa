package session

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/round"
)

// Outcome is the scored result of a resolved round.
type Outcome struct {
	Correct  bool
	TimedOut bool
	Answer   string

	// Remaining is the seconds left when the round was locked.
	Remaining int

	XPAward    int
	Streak     int
	BestStreak int

	// Milestone is set when Streak reached a celebration milestone.
	Milestone bool

	// Solution is the canonical correct answer, for feedback.
	Solution string

	HintsUsed int
}

// Round is one exercise from issue to resolution.
type Round struct {
	// Number is the 1-based position of the round in its session.
	Number   int
	Exercise exercise.Exercise
	Mode     exercise.Mode
	Params   difficulty.Params
	Started  time.Time

	clock   *round.Clock
	hints   atomic.Int32
	outcome atomic.Pointer[Outcome]
	session *Session
}

// Tick advances the countdown by one second. The outcome is non-nil only
// on the tick that times the round out.
func (r *Round) Tick() (round.State, *Outcome) {
	var out *Outcome
	if res, done := r.clock.Tick(); done {
		out = r.session.resolve(r, res)
	}
	return r.clock.State(), out
}

// Submit answers the round. A blank answer is rejected with
// ErrEmptyAnswer and leaves the round open. A submission that loses to a
// timeout or an earlier submission returns a nil outcome and no error.
func (r *Round) Submit(answer string) (*Outcome, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}
	res, ok := r.clock.Submit(answer, r.Exercise.Check)
	if !ok {
		return nil, nil
	}
	return r.session.resolve(r, res), nil
}

// RevealHint returns the next hint for a word round. Equations have no
// hints; asking past the last hint changes nothing.
func (r *Round) RevealHint() (string, bool) {
	w, ok := r.Exercise.(*exercise.Word)
	if !ok {
		return "", false
	}
	for {
		n := r.hints.Load()
		hint, ok := w.Hint(int(n))
		if !ok {
			return "", false
		}
		if r.hints.CompareAndSwap(n, n+1) {
			return hint, true
		}
	}
}

// Hints returns the hints revealed so far, in order.
func (r *Round) Hints() []string {
	w, ok := r.Exercise.(*exercise.Word)
	if !ok {
		return nil
	}
	return w.Hints[:r.HintsRevealed()]
}

// HintsRevealed returns how many hints have been shown.
func (r *Round) HintsRevealed() int { return int(r.hints.Load()) }

// State returns a snapshot of the round's clock.
func (r *Round) State() round.State { return r.clock.State() }

// Resolved reports whether the round has an outcome.
func (r *Round) Resolved() bool { return r.outcome.Load() != nil }

// Outcome returns the round's outcome, or nil while unresolved.
func (r *Round) Outcome() *Outcome { return r.outcome.Load() }

// Prompt returns the text shown to the player.
func (r *Round) Prompt() string {
	switch ex := r.Exercise.(type) {
	case *exercise.Equation:
		return ex.Text()
	case *exercise.Word:
		return ex.Prompt(r.Mode)
	default:
		return ""
	}
}
