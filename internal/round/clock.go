// Package round implements the per-exercise countdown.
//
// A Clock starts in PhasePlaying with a fixed number of seconds. The host
// calls Tick once per second; the player's answer arrives through Submit.
// Both paths race for the same lock and exactly one of them resolves the
// round. Phase and remaining seconds share a single atomic word so that
// locking and capturing the remaining time happen in one step.
package round

import (
	"fmt"
	"sync/atomic"
)

// Phase is the lifecycle stage of a round.
type Phase uint32

const (
	PhasePlaying   Phase = iota // Accepting ticks and answers
	PhaseLocked                 // Claimed by a submission or timeout, resolving
	PhaseResult                 // Resolved; Result is available
	PhaseCancelled              // Discarded by the host
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLocked:
		return "locked"
	case PhaseResult:
		return "result"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", uint32(p))
	}
}

// Result is the resolution of a round.
type Result struct {
	Correct  bool
	TimedOut bool

	// Remaining is the seconds left when the round was locked.
	Remaining int

	// Answer is the submitted answer; empty on timeout.
	Answer string
}

// State is a point-in-time snapshot of a round.
type State struct {
	Phase     Phase
	Remaining int
	Duration  int

	// Result is set once Phase is PhaseResult.
	Result *Result
}

// Locked reports whether the round no longer accepts ticks or answers.
func (s State) Locked() bool { return s.Phase != PhasePlaying }

// Clock is the countdown state machine for one round.
type Clock struct {
	// word packs the phase in the high 32 bits and the remaining
	// seconds in the low 32 bits.
	word     atomic.Uint64
	duration int
	result   Result
}

// New creates a clock in PhasePlaying with the given duration. A
// non-positive duration is clamped to 0: the round has already run out,
// so the first Tick or Submit resolves it as a timeout.
func New(seconds int) *Clock {
	seconds = max(seconds, 0)
	c := &Clock{duration: seconds}
	c.word.Store(pack(PhasePlaying, seconds))
	return c
}

func pack(p Phase, remaining int) uint64 {
	return uint64(p)<<32 | uint64(uint32(remaining))
}

func unpack(w uint64) (Phase, int) {
	return Phase(w >> 32), int(uint32(w))
}

// Tick advances the clock by one second. When the remaining time reaches
// 0 the round is resolved as a timeout and the result is returned with
// ok set. Ticks outside PhasePlaying are ignored.
func (c *Clock) Tick() (res Result, ok bool) {
	for {
		old := c.word.Load()
		phase, remaining := unpack(old)
		if phase != PhasePlaying {
			return Result{}, false
		}

		next := max(remaining-1, 0)
		if next > 0 {
			if c.word.CompareAndSwap(old, pack(PhasePlaying, next)) {
				return Result{}, false
			}
			continue
		}

		if c.word.CompareAndSwap(old, pack(PhaseLocked, 0)) {
			return c.finish(Result{TimedOut: true}), true
		}
	}
}

// Submit locks the round and evaluates answer with check. ok is false if
// the round was already locked, resolved or cancelled; the losing call
// has no effect. A clock with no time left resolves as a timeout and the
// answer is not evaluated.
func (c *Clock) Submit(answer string, check func(string) bool) (res Result, ok bool) {
	remaining, ok := c.lock()
	if !ok {
		return Result{}, false
	}
	if remaining == 0 {
		return c.finish(Result{TimedOut: true}), true
	}
	return c.finish(Result{
		Correct:   check(answer),
		Remaining: remaining,
		Answer:    answer,
	}), true
}

// Cancel discards a round that is still playing. It reports whether the
// round was cancelled; a resolved round is left as is.
func (c *Clock) Cancel() bool {
	for {
		old := c.word.Load()
		phase, remaining := unpack(old)
		if phase != PhasePlaying {
			return false
		}
		if c.word.CompareAndSwap(old, pack(PhaseCancelled, remaining)) {
			return true
		}
	}
}

// State returns a snapshot of the clock.
func (c *Clock) State() State {
	phase, remaining := unpack(c.word.Load())
	s := State{Phase: phase, Remaining: remaining, Duration: c.duration}
	if phase == PhaseResult {
		r := c.result
		s.Result = &r
	}
	return s
}

// Remaining returns the seconds left.
func (c *Clock) Remaining() int {
	_, remaining := unpack(c.word.Load())
	return remaining
}

// Duration returns the seconds the round started with.
func (c *Clock) Duration() int { return c.duration }

// lock moves the clock from PhasePlaying to PhaseLocked and returns the
// remaining seconds captured in the same step.
func (c *Clock) lock() (int, bool) {
	for {
		old := c.word.Load()
		phase, remaining := unpack(old)
		if phase != PhasePlaying {
			return 0, false
		}
		if c.word.CompareAndSwap(old, pack(PhaseLocked, remaining)) {
			return remaining, true
		}
	}
}

// finish publishes res. Only the goroutine holding the lock calls it.
func (c *Clock) finish(res Result) Result {
	c.result = res
	c.word.Store(pack(PhaseResult, res.Remaining))
	return res
}
