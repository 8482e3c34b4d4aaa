package session

import (
	"slices"
	"time"

	"github.com/abhisek/wizquest/internal/exercise"
)

// ModeResult aggregates rounds played in one mode.
type ModeResult struct {
	Mode    exercise.Mode
	Rounds  int
	Correct int
	XP      int
}

func (m *ModeResult) record(correct bool, xp int) {
	m.Rounds++
	if correct {
		m.Correct++
		m.XP += xp
	}
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	ID         string
	Duration   time.Duration
	Rounds     int
	Correct    int
	Accuracy   float64
	XP         int
	BestStreak int
	ByMode     []ModeResult
}

// Summary builds the end-of-session summary. Abandoned rounds are not
// counted.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &Summary{
		ID:         s.ID,
		Duration:   s.now().Sub(s.started),
		BestStreak: s.progress.BestStreak,
	}
	for _, m := range exercise.AllModes() {
		mr, ok := s.byMode[m]
		if !ok {
			continue
		}
		sum.ByMode = append(sum.ByMode, *mr)
		sum.Rounds += mr.Rounds
		sum.Correct += mr.Correct
		sum.XP += mr.XP
	}
	slices.SortStableFunc(sum.ByMode, func(a, b ModeResult) int { return b.Rounds - a.Rounds })

	if sum.Rounds > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Rounds)
	}
	return sum
}
