package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/store"
)

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func TestHistory_Empty(t *testing.T) {
	s := New(openEvents(t), "mia")
	assert.Contains(t, s.View(80, 24), "Loading")

	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 24), "No rounds yet")
}

func TestHistory_ListAndExpand(t *testing.T) {
	events := openEvents(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, events.AppendRoundEvent(ctx, store.RoundEventData{
		Player: "mia", Round: 1, Mode: "math", Tier: "easy", Prompt: "3 + 4 = ?",
		Answer: "7", Solution: "7", Correct: true, XP: 19, Timestamp: now.Add(-time.Minute),
	}))
	require.NoError(t, events.AppendRoundEvent(ctx, store.RoundEventData{
		Player: "mia", Round: 2, Mode: "describe", Tier: "easy", Prompt: "A pet that purrs",
		Solution: "cat", TimedOut: true, Timestamp: now,
	}))

	s := New(events, "mia")
	s.Update(s.Init()())
	require.Len(t, s.rounds, 2)

	view := s.View(100, 24)
	assert.Contains(t, view, "Guess from Description")
	assert.Contains(t, view, "Math Blitz")
	assert.Contains(t, view, "+19 XP")
	assert.NotContains(t, view, "A pet that purrs")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 24), "A pet that purrs")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
}

func TestHistory_EscPops(t *testing.T) {
	s := New(openEvents(t), "mia")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, screen.PopMsg{}, cmd())
}
