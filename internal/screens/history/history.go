// Package history lists a player's latest rounds.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/store"
	"github.com/abhisek/wizquest/internal/ui/layout"
	"github.com/abhisek/wizquest/internal/ui/theme"
)

// Limit is the number of rounds shown.
const Limit = 30

type loadedMsg struct {
	rounds []store.RoundEventRecord
	err    error
}

// Screen displays recent rounds. Enter expands a round's details.
type Screen struct {
	events   store.EventRepo
	player   string
	rounds   []store.RoundEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates a history screen for player.
func New(events store.EventRepo, player string) *Screen {
	return &Screen{events: events, player: player, expanded: make(map[int]bool)}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		rounds, err := s.events.RecentRounds(context.Background(), s.player, Limit)
		return loadedMsg{rounds: rounds, err: err}
	}
}

func (s *Screen) Title() string { return "History" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.rounds = msg.rounds
		s.selected = min(s.selected, max(len(s.rounds)-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, screen.Pop()
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.rounds)-1, 0))
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case s.errMsg != "":
		return dim.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return dim.Render("\n\nLoading history...")
	case len(s.rounds) == 0:
		return dim.Italic(true).Render("\n\nNo rounds yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.rounds {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %-22s %-8s %s", prefix,
			r.Timestamp.Format("Jan 02 15:04"), modeName(r.Mode), r.Tier, verdict(r.RoundEventData))
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s   answer %q   solution %s   %ds left   %d hints",
				r.Prompt, r.Answer, r.Solution, r.Remaining, r.Hints)
			b.WriteString(layout.Center(theme.Hint.Render(detail), width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func modeName(name string) string {
	if m, err := exercise.ParseMode(name); err == nil {
		return m.DisplayName()
	}
	return name
}

func verdict(r store.RoundEventData) string {
	style := theme.Verdict(r.Correct, r.TimedOut)
	switch {
	case r.Correct:
		return style.Render("✓") + theme.XP.Render(fmt.Sprintf(" +%d XP", r.XP))
	case r.TimedOut:
		return style.Render("⏱ time")
	default:
		return style.Render("✗")
	}
}
