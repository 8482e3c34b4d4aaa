package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/ui/components"
	"github.com/abhisek/wizquest/internal/ui/layout"
	"github.com/abhisek/wizquest/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.round == nil {
		msg := s.errMsg
		if msg == "" {
			msg = "Getting ready..."
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n" + msg)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(layout.Center(components.NewCountdown(s.remaining, s.round.State().Duration, min(width-8, 60)).View(), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(theme.Card.Render(theme.Prompt.Render(s.prompt())), width))
	b.WriteString("\n\n")

	if _, ok := s.round.Exercise.(*exercise.Equation); ok {
		b.WriteString(layout.Center(s.choices.View(), width))
		b.WriteString("\n")
	}
	b.WriteString(layout.Center(s.input.View(), width))
	b.WriteString("\n")

	if hints := s.round.Hints(); len(hints) > 0 {
		b.WriteString("\n")
		for i, h := range hints {
			b.WriteString(layout.Center(theme.Hint.Render(fmt.Sprintf("Hint %d: %s", i+1, h)), width))
			b.WriteString("\n")
		}
	}

	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderResult(width))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width))
	}
	return b.String()
}

func (s *Screen) prompt() string {
	if w, ok := s.round.Exercise.(*exercise.Word); ok && s.peeking() {
		return strings.ToUpper(w.Word) + "\n" + theme.Hint.Render(fmt.Sprintf("(%s)", w.Category))
	}
	return s.round.Prompt()
}

func (s *Screen) renderInfoLine(width int) string {
	mode := s.round.Mode
	left := theme.ModeAccent(mode.String()).
		Render(fmt.Sprintf("  Round %d · %s", s.round.Number, mode.DisplayName()))

	stats := s.game.Session().Stats()
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("today %d/%d  %s", stats.CorrectAnswers, stats.TotalSolved,
			theme.XP.Render(fmt.Sprintf("+%d XP", stats.XPEarnedToday))))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *Screen) renderResult(width int) string {
	res := s.result
	var lines []string

	verdict := theme.Verdict(res.Correct, res.TimedOut)
	switch {
	case res.Correct:
		lines = append(lines, verdict.Render("Correct!")+"  "+
			theme.XP.Render(fmt.Sprintf("+%d XP", res.XPAward)))
		if res.Milestone {
			lines = append(lines, theme.XP.Render(fmt.Sprintf("🔥 %d in a row!", res.Streak)))
		} else if res.Streak > 1 {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("Streak %d", res.Streak)))
		}
	case res.TimedOut:
		lines = append(lines, verdict.Render("Time's up!")+"  "+
			theme.Body.Render("The answer was "+res.Solution))
	default:
		lines = append(lines, verdict.Render("Not quite.")+"  "+
			theme.Body.Render("The answer was "+res.Solution))
	}
	if res.LevelUp {
		lines = append(lines, theme.XP.Render(fmt.Sprintf("Level up! You are now level %d", res.NewLevel)))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(layout.Center(l, width))
		b.WriteString("\n")
	}
	return b.String()
}
