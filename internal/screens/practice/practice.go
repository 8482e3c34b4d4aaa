// Package practice is the screen that plays rounds of a session.
package practice

import (
	"context"
	"errors"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/play"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/screens/summary"
	"github.com/abhisek/wizquest/internal/session"
	"github.com/abhisek/wizquest/internal/ui/components"
	"github.com/abhisek/wizquest/internal/ui/layout"
)

// ListenPeekSecs is how long a listen-mode word stays visible before it
// is hidden and must be typed from memory.
const ListenPeekSecs = 3

// TickInterval is the countdown resolution.
var TickInterval = time.Second

// Screen plays one round after another until the player leaves.
type Screen struct {
	game  *play.Game
	round *session.Round

	remaining int
	choices   components.NumberChoices
	input     components.AnswerInput
	result    *play.RoundResult
	errMsg    string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
)

// New creates the screen for a started game.
func New(game *play.Game) *Screen {
	return &Screen{game: game}
}

func (s *Screen) Init() tea.Cmd {
	return s.nextRound()
}

func (s *Screen) Title() string {
	return s.game.Playlist.Label()
}

func (s *Screen) Status() layout.Status {
	p := s.game.Progress()
	st := layout.Status{
		Player: p.Name,
		Level:  p.Level,
		XP:     p.TotalXP,
		Streak: p.CurrentStreak,
	}
	if s.round != nil {
		st.Tier = s.round.Params.Tier.DisplayName()
	}
	return st
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" && s.round == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "End session"}}
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next round"},
			{Key: "Esc", Description: "End session"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	if s.round != nil && s.round.Mode.IsWord() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "a-e", Description: "Pick"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "End session"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.playing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) playing() bool {
	return s.round != nil && s.result == nil
}

func (s *Screen) nextRound() tea.Cmd {
	r, err := s.game.NextRound()
	if err != nil {
		s.round = nil
		s.errMsg = "Could not start a round: " + err.Error()
		return nil
	}

	s.round = r
	s.result = nil
	s.errMsg = ""
	s.remaining = r.State().Remaining

	if eq, ok := r.Exercise.(*exercise.Equation); ok {
		s.choices = components.NewNumberChoices(eq.Choices)
		s.input = components.NewAnswerInput("or type it", components.InputDigits, 6)
	} else {
		s.input = components.NewAnswerInput("type the word", components.InputLetters, 24)
	}
	return tea.Batch(s.input.Init(), tick(r.Number))
}

func tick(round int) tea.Cmd {
	return tea.Tick(TickInterval, func(time.Time) tea.Msg {
		return tickMsg{round: round}
	})
}

func (s *Screen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if !s.playing() || msg.round != s.round.Number {
		return s, nil
	}
	state, out := s.round.Tick()
	s.remaining = state.Remaining
	if out != nil {
		s.finish(out)
		return s, nil
	}
	if state.Locked() {
		return s, nil
	}
	return s, tick(msg.round)
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return s, s.end()
	}

	if s.round == nil {
		return s, nil
	}
	if s.result != nil {
		return s, s.nextRound()
	}

	switch key {
	case "tab":
		s.round.RevealHint()
		return s, nil
	case "enter":
		return s, s.submit()
	}

	if _, isEq := s.round.Exercise.(*exercise.Equation); isEq && s.input.Value() == "" {
		s.choices, _ = s.choices.Update(msg)
		if v, ok := s.choices.Value(); ok {
			s.answer(strconv.Itoa(v))
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit answers with the typed text, or the highlighted choice when
// nothing was typed.
func (s *Screen) submit() tea.Cmd {
	answer := s.input.Value()
	if answer == "" {
		if eq, ok := s.round.Exercise.(*exercise.Equation); ok {
			answer = strconv.Itoa(eq.Choices[s.choices.Selected])
			s.choices.Chosen = s.choices.Selected
		}
	}
	s.answer(answer)
	return nil
}

func (s *Screen) answer(answer string) {
	out, err := s.round.Submit(answer)
	if errors.Is(err, session.ErrEmptyAnswer) {
		return
	}
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	if out != nil {
		s.finish(out)
	}
}

func (s *Screen) finish(out *session.Outcome) {
	res, err := s.game.Record(context.Background(), s.round, out)
	s.result = &res
	if err != nil {
		s.errMsg = "Progress not saved: " + err.Error()
	}
	s.remaining = out.Remaining
	s.input.Submit(out.Correct)
	if eq, ok := s.round.Exercise.(*exercise.Equation); ok {
		s.choices.Reveal(eq.ChoiceIndex(eq.Answer))
	}
}

func (s *Screen) end() tea.Cmd {
	sum, err := s.game.End(context.Background())
	return screen.Replace(summary.New(sum, s.game.Progress()).WithSaveError(err))
}

// peeking reports whether a listen-mode word is still on screen.
func (s *Screen) peeking() bool {
	if s.round == nil || s.round.Mode != exercise.ModeListen || s.result != nil {
		return false
	}
	return s.round.State().Duration-s.remaining < ListenPeekSecs
}
