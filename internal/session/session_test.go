package session

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/round"
	"github.com/abhisek/wizquest/internal/scoring"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestSession(t *testing.T, progress scoring.Progress) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
	s := New(progress, Options{
		Rand: rand.New(rand.NewPCG(7, 11)),
		Now:  clk.Now,
	})
	return s, clk
}

func TestNext_StartsRound(t *testing.T) {
	s, _ := newTestSession(t, scoring.Progress{Level: 12})

	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, difficulty.TierIntermediate, r.Params.Tier)
	assert.Equal(t, difficulty.MathRoundSecs, r.State().Remaining)
	assert.Equal(t, round.PhasePlaying, r.State().Phase)
	assert.Equal(t, exercise.KindEquation, r.Exercise.Kind())
	assert.NotEmpty(t, r.Prompt())

	_, err = r.Submit(r.Exercise.Solution())
	require.NoError(t, err)

	w, err := s.Next(exercise.ModeDescribe)
	require.NoError(t, err)
	assert.Equal(t, difficulty.WordRoundSecs, w.State().Remaining)
	assert.Equal(t, exercise.KindWord, w.Exercise.Kind())
}

func TestNext_RoundInProgress(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))

	_, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)

	_, err = s.Next(exercise.ModeMath)
	assert.ErrorIs(t, err, ErrRoundInProgress)

	require.True(t, s.Abandon())
	_, err = s.Next(exercise.ModeMath)
	assert.NoError(t, err)
}

func TestSubmit_CorrectAwardsXP(t *testing.T) {
	s, _ := newTestSession(t, scoring.Progress{Level: 6})
	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, out := r.Tick()
		require.Nil(t, out)
	}

	out, err := r.Submit(r.Exercise.Solution())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Correct)
	assert.Equal(t, 18, out.Remaining)
	assert.Equal(t, 26, out.XPAward)
	assert.Equal(t, 1, out.Streak)

	p := s.Progress()
	assert.Equal(t, 26, p.TotalXP)
	assert.Equal(t, 1, p.CurrentStreak)

	st := s.Stats()
	assert.Equal(t, 1, st.TotalSolved)
	assert.Equal(t, 1, st.CorrectAnswers)
	assert.Equal(t, 26, st.XPEarnedToday)
	assert.Same(t, out, r.Outcome())
}

func TestSubmit_EmptyAnswerKeepsRoundOpen(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))
	r, err := s.Next(exercise.ModeListen)
	require.NoError(t, err)

	out, err := r.Submit("   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Nil(t, out)
	assert.Equal(t, round.PhasePlaying, r.State().Phase)
	assert.False(t, r.Resolved())
}

func TestTimeout_ResetsStreak(t *testing.T) {
	s, _ := newTestSession(t, scoring.Progress{Level: 3, CurrentStreak: 3, BestStreak: 3})
	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)

	var out *Outcome
	var st round.State
	for i := 0; i < difficulty.MathRoundSecs; i++ {
		st, out = r.Tick()
		if i < difficulty.MathRoundSecs-1 {
			require.Nil(t, out, "tick %d", i)
		}
	}
	require.NotNil(t, out)
	assert.Equal(t, round.PhaseResult, st.Phase)
	assert.Equal(t, 0, st.Remaining)
	assert.False(t, out.Correct)
	assert.True(t, out.TimedOut)
	assert.Equal(t, 0, out.XPAward)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 3, out.BestStreak)

	// Late submission and further ticks are no-ops.
	late, err := r.Submit(r.Exercise.Solution())
	assert.NoError(t, err)
	assert.Nil(t, late)
	_, again := r.Tick()
	assert.Nil(t, again)

	st2 := s.Stats()
	assert.Equal(t, 1, st2.TotalSolved)
	assert.Equal(t, 0, st2.CorrectAnswers)
}

func TestStreakSequence(t *testing.T) {
	s, _ := newTestSession(t, scoring.Progress{Level: 2, CurrentStreak: 2, BestStreak: 4})

	play := func(correct bool) *Outcome {
		r, err := s.Next(exercise.ModeMath)
		require.NoError(t, err)
		answer := r.Exercise.Solution()
		if !correct {
			eq := r.Exercise.(*exercise.Equation)
			answer = "-1"
			if eq.Answer == -1 {
				answer = "-2"
			}
		}
		out, err := r.Submit(answer)
		require.NoError(t, err)
		require.NotNil(t, out)
		return out
	}

	o1 := play(true)
	assert.Equal(t, 3, o1.Streak)
	assert.Equal(t, 4, o1.BestStreak)

	o2 := play(true)
	assert.Equal(t, 4, o2.Streak)
	assert.Equal(t, 4, o2.BestStreak)

	o3 := play(false)
	assert.False(t, o3.Correct)
	assert.Equal(t, 0, o3.Streak)
	assert.Equal(t, 4, o3.BestStreak)

	p := s.Progress()
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, 4, p.BestStreak)
}

func TestSubmitTickRace_SingleOutcome(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, _ := newTestSession(t, scoring.NewProgress("ada"))
		r, err := s.Next(exercise.ModeMath)
		require.NoError(t, err)
		for r.State().Remaining > 1 {
			r.Tick()
		}

		var wg sync.WaitGroup
		outcomes := make(chan *Outcome, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			out, _ := r.Submit(r.Exercise.Solution())
			outcomes <- out
		}()
		go func() {
			defer wg.Done()
			_, out := r.Tick()
			outcomes <- out
		}()
		wg.Wait()
		close(outcomes)

		n := 0
		for out := range outcomes {
			if out != nil {
				n++
			}
		}
		require.Equal(t, 1, n)
		require.Equal(t, 1, s.Stats().TotalSolved)
	}
}

func TestRevealHint(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))
	r, err := s.Next(exercise.ModeDescribe)
	require.NoError(t, err)

	w := r.Exercise.(*exercise.Word)
	for i, want := range w.Hints {
		got, ok := r.RevealHint()
		require.True(t, ok, "hint %d", i)
		assert.Equal(t, want, got)
	}
	_, ok := r.RevealHint()
	assert.False(t, ok)
	assert.Equal(t, len(w.Hints), r.HintsRevealed())
	assert.Equal(t, w.Hints, r.Hints())

	out, err := r.Submit(w.Word)
	require.NoError(t, err)
	assert.Equal(t, len(w.Hints), out.HintsUsed)
}

func TestRevealHint_EquationHasNone(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))
	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)

	_, ok := r.RevealHint()
	assert.False(t, ok)
	assert.Nil(t, r.Hints())
}

func TestNextExercise_AvoidsRecentKeys(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))
	p := ResolveTier(1)

	var keys []exercise.Key
	for i := 0; i < 60; i++ {
		ex, err := s.NextExercise(p, exercise.ModeMath)
		require.NoError(t, err)
		keys = append(keys, ex.Key())
	}
	for i := range keys {
		for j := max(0, i-DefaultRecentWindow); j < i; j++ {
			assert.NotEqual(t, keys[j], keys[i], "key %s repeated within window", keys[i])
		}
	}
}

func TestAbandon_NoScore(t *testing.T) {
	s, _ := newTestSession(t, scoring.Progress{Level: 4, CurrentStreak: 2, BestStreak: 2})
	r, err := s.Next(exercise.ModeFillBlank)
	require.NoError(t, err)

	require.True(t, s.Abandon())
	assert.Equal(t, round.PhaseCancelled, r.State().Phase)
	assert.Nil(t, s.Current())

	out, err := r.Submit("anything")
	assert.NoError(t, err)
	assert.Nil(t, out)

	assert.Equal(t, 2, s.Progress().CurrentStreak)
	assert.Equal(t, 0, s.Stats().TotalSolved)
	assert.False(t, s.Abandon())
}

func TestSetLevel(t *testing.T) {
	s, _ := newTestSession(t, scoring.NewProgress("ada"))
	s.SetLevel(21)
	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)
	assert.Equal(t, difficulty.TierExtreme, r.Params.Tier)

	s.SetLevel(-3)
	assert.Equal(t, 1, s.Progress().Level)
}

func TestStats_RollOverDay(t *testing.T) {
	s, clk := newTestSession(t, scoring.NewProgress("ada"))
	r, err := s.Next(exercise.ModeMath)
	require.NoError(t, err)
	_, err = r.Submit(r.Exercise.Solution())
	require.NoError(t, err)
	require.Equal(t, 1, s.Stats().TotalSolved)

	clk.Advance(24 * time.Hour)
	assert.Equal(t, 0, s.Stats().TotalSolved)
	assert.Equal(t, 1, s.Progress().CurrentStreak)
}

func TestSummary(t *testing.T) {
	s, clk := newTestSession(t, scoring.Progress{Level: 5})

	for i := 0; i < 3; i++ {
		r, err := s.Next(exercise.ModeMath)
		require.NoError(t, err)
		_, err = r.Submit(r.Exercise.Solution())
		require.NoError(t, err)
	}
	r, err := s.Next(exercise.ModeListen)
	require.NoError(t, err)
	_, err = r.Submit("qqqq")
	require.NoError(t, err)
	clk.Advance(5 * time.Minute)

	sum := s.Summary()
	assert.Equal(t, s.ID, sum.ID)
	assert.Equal(t, 4, sum.Rounds)
	assert.Equal(t, 3, sum.Correct)
	assert.InDelta(t, 0.75, sum.Accuracy, 1e-9)
	assert.Equal(t, 5*time.Minute, sum.Duration)
	assert.Equal(t, 3, sum.BestStreak)
	require.Len(t, sum.ByMode, 2)
	assert.Equal(t, exercise.ModeMath, sum.ByMode[0].Mode)
	assert.Equal(t, 3, sum.ByMode[0].Rounds)
	assert.Equal(t, 0, sum.ByMode[1].Correct)
}
