// Package summary shows the results of a finished session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/session"
	"github.com/abhisek/wizquest/internal/ui/layout"
	"github.com/abhisek/wizquest/internal/ui/theme"
)

// Screen displays a session summary.
type Screen struct {
	summary  *session.Summary
	progress scoring.Progress
	saveErr  error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
)

// New creates a summary screen. progress is the player's state after the
// session.
func New(sum *session.Summary, progress scoring.Progress) *Screen {
	return &Screen{summary: sum, progress: progress}
}

// WithSaveError notes that the session could not be persisted.
func (s *Screen) WithSaveError(err error) *Screen {
	s.saveErr = err
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Session Summary" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
}

func (s *Screen) Status() layout.Status {
	return layout.Status{
		Player: s.progress.Name,
		Level:  s.progress.Level,
		XP:     s.progress.TotalXP,
		Streak: s.progress.CurrentStreak,
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, screen.Pop()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(headline(sum)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Played for %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Rounds: %d      Correct: %d      Accuracy: %.0f%%",
		sum.Rounds, sum.Correct, sum.Accuracy*100)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(
		theme.XP.Render(fmt.Sprintf("+%d XP", sum.XP))+
			theme.Hint.Render(fmt.Sprintf("    best streak %d", sum.BestStreak)), width))
	b.WriteString("\n\n")

	if len(sum.ByMode) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 50), 0)))
		b.WriteString(layout.Center(theme.Hint.Render("Modes"), width))
		b.WriteString("\n")
		b.WriteString(layout.Center(divider, width))
		b.WriteString("\n")
		for _, m := range sum.ByMode {
			line := fmt.Sprintf("%-24s %2d/%-2d correct   %4d XP", m.Mode.DisplayName(), m.Correct, m.Rounds, m.XP)
			b.WriteString(layout.Center(theme.Body.Render(line), width))
			b.WriteString("\n")
		}
	}
	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Width(width).Render("Progress not saved: " + s.saveErr.Error()))
	}
	return b.String()
}

func headline(sum *session.Summary) string {
	switch {
	case sum.Rounds == 0:
		return "See you next time!"
	case sum.Accuracy >= 0.9:
		return "Amazing work!"
	case sum.Accuracy >= 0.6:
		return "Great practice!"
	default:
		return "Nice effort, keep going!"
	}
}
