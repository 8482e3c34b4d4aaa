package practice

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/play"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/screens/summary"
	"github.com/abhisek/wizquest/internal/session"
	"github.com/abhisek/wizquest/internal/store"
	"github.com/abhisek/wizquest/internal/ui/components"
)

func newScreen(t *testing.T, playlist play.Playlist) (*Screen, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "practice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	deps := play.Deps{
		Profiles: st.ProfileRepo(),
		Events:   st.EventRepo(),
		Session:  session.Options{Rand: rand.New(rand.NewPCG(11, 13))},
	}
	g, err := play.Start(context.Background(), deps, "mia", 1, playlist)
	require.NoError(t, err)

	s := New(g)
	s.Init()
	require.NotNil(t, s.round)
	return s, st
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func press(s *Screen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func TestInit_StartsFirstRound(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))

	assert.Equal(t, 1, s.round.Number)
	assert.Equal(t, s.round.State().Duration, s.remaining)
	assert.Contains(t, s.View(80, 24), s.round.Prompt())
	assert.Equal(t, "Math Blitz", s.Title())
}

func TestPickCorrectChoice(t *testing.T) {
	s, st := newScreen(t, play.Single(exercise.ModeMath))
	eq := s.round.Exercise.(*exercise.Equation)
	idx := eq.ChoiceIndex(eq.Answer)

	press(s, key(rune(components.ChoiceKeys[idx])))

	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct)
	assert.Positive(t, s.result.XPAward)
	assert.Contains(t, s.View(80, 24), "Correct!")

	rounds, err := st.EventRepo().RecentRounds(context.Background(), "mia", 5)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.True(t, rounds[0].Correct)
}

func TestTypedAnswerWinsOverChoices(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))
	eq := s.round.Exercise.(*exercise.Equation)

	for _, r := range strconv.Itoa(eq.Answer) {
		press(s, key(r))
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct)
	assert.Equal(t, strconv.Itoa(eq.Answer), s.result.Answer)
}

func TestEnterSubmitsHighlightedChoice(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))
	eq := s.round.Exercise.(*exercise.Equation)

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	require.NotNil(t, s.result)
	assert.Equal(t, strconv.Itoa(eq.Choices[0]), s.result.Answer)
	assert.Equal(t, eq.Choices[0] == eq.Answer, s.result.Correct)
}

func TestTimeout(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))

	for range s.round.State().Duration + 1 {
		press(s, tickMsg{round: s.round.Number})
	}

	require.NotNil(t, s.result)
	assert.True(t, s.result.TimedOut)
	assert.Zero(t, s.result.XPAward)
	assert.Contains(t, s.View(80, 24), "Time's up!")
}

func TestStaleTickIgnored(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))
	before := s.remaining

	cmd := press(s, tickMsg{round: s.round.Number + 7})

	assert.Nil(t, cmd)
	assert.Equal(t, before, s.remaining)
}

func TestTickSchedulesNext(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeMath))

	cmd := press(s, tickMsg{round: 1})

	assert.NotNil(t, cmd)
	assert.Equal(t, s.round.State().Duration-1, s.remaining)
}

func TestAnyKeyAfterResultStartsNextRound(t *testing.T) {
	s, _ := newScreen(t, play.Mixed())
	eq := s.round.Exercise.(*exercise.Equation)
	press(s, key(rune(components.ChoiceKeys[eq.ChoiceIndex(eq.Answer)])))
	require.NotNil(t, s.result)

	press(s, key(' '))

	assert.Nil(t, s.result)
	assert.Equal(t, 2, s.round.Number)
	assert.Equal(t, exercise.ModeListen, s.round.Mode)
}

func TestWordRound_HintAndAnswer(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeDescribe))
	w := s.round.Exercise.(*exercise.Word)

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, s.round.HintsRevealed())
	assert.Contains(t, s.View(80, 24), "Hint 1: "+w.Hints[0])

	for _, r := range w.Word {
		press(s, key(r))
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct)
	assert.Equal(t, 1, s.result.HintsUsed)
}

func TestWordRound_EmptyAnswerKeepsPlaying(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeFillBlank))

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Nil(t, s.result)
	assert.Empty(t, s.errMsg)
}

func TestListenPeek(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeListen))
	w := s.round.Exercise.(*exercise.Word)

	assert.True(t, s.peeking())
	assert.Contains(t, s.View(80, 24), strings.ToUpper(w.Word))

	for range ListenPeekSecs {
		press(s, tickMsg{round: 1})
	}
	assert.False(t, s.peeking())
	assert.NotContains(t, s.View(80, 24), strings.ToUpper(w.Word))
}

func TestEscEndsSession(t *testing.T) {
	s, st := newScreen(t, play.Single(exercise.ModeMath))

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})

	require.NotNil(t, cmd)
	msg, ok := cmd().(screen.ReplaceMsg)
	require.True(t, ok, "expected ReplaceMsg")
	assert.IsType(t, &summary.Screen{}, msg.Screen)
	assert.True(t, s.round.State().Locked())

	p, err := st.ProfileRepo().Load(context.Background(), "mia")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestEscShowsSaveFailure(t *testing.T) {
	s, st := newScreen(t, play.Single(exercise.ModeMath))
	require.NoError(t, st.Close())

	cmd := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})

	require.NotNil(t, cmd)
	msg, ok := cmd().(screen.ReplaceMsg)
	require.True(t, ok, "expected ReplaceMsg")
	assert.Contains(t, msg.Screen.View(80, 24), "Progress not saved")
}

func TestKeyHints(t *testing.T) {
	s, _ := newScreen(t, play.Single(exercise.ModeDescribe))
	assert.Equal(t, "Tab", s.KeyHints()[1].Key)

	m, _ := newScreen(t, play.Single(exercise.ModeMath))
	assert.Equal(t, "a-e", m.KeyHints()[1].Key)
}
