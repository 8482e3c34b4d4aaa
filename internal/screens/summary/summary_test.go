package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		ID:         "s1",
		Duration:   4*time.Minute + 12*time.Second,
		Rounds:     10,
		Correct:    8,
		Accuracy:   0.8,
		XP:         196,
		BestStreak: 5,
		ByMode: []session.ModeResult{
			{Mode: exercise.ModeMath, Rounds: 6, Correct: 5, XP: 120},
			{Mode: exercise.ModeDescribe, Rounds: 4, Correct: 3, XP: 76},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), scoring.Progress{Name: "mia", Level: 3})
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), scoring.Progress{Name: "mia", Level: 3})
	view := s.View(80, 24)
	for _, want := range []string{"Great practice!", "4:12", "Accuracy: 80%", "+196 XP", "Math Blitz", "Guess from Description"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	s := New(&session.Summary{}, scoring.Progress{})
	if view := s.View(80, 24); !strings.Contains(view, "See you next time!") {
		t.Errorf("unexpected view for empty session: %q", view)
	}
}

func TestSummaryScreen_Status(t *testing.T) {
	s := New(testSummary(), scoring.Progress{Name: "mia", Level: 3, TotalXP: 450, CurrentStreak: 2})
	st := s.Status()
	if st.Player != "mia" || st.Level != 3 || st.XP != 450 || st.Streak != 2 {
		t.Errorf("Status = %+v", st)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), scoring.Progress{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(screen.PopMsg); !ok {
		t.Errorf("expected PopMsg, got %T", cmd())
	}
}

func TestSummaryScreen_IgnoresOtherKeys(t *testing.T) {
	s := New(testSummary(), scoring.Progress{})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected no command for unrelated key")
	}
}

func TestSummaryScreen_SaveError(t *testing.T) {
	s := New(testSummary(), scoring.Progress{Name: "mia"})
	if view := s.View(80, 24); strings.Contains(view, "Progress not saved") {
		t.Errorf("unexpected save warning: %q", view)
	}

	s.WithSaveError(errors.New("disk full"))
	if view := s.View(80, 24); !strings.Contains(view, "Progress not saved: disk full") {
		t.Errorf("view missing save warning: %q", view)
	}
}
