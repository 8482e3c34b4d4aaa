// Package theme holds the colors and lipgloss styles shared by every
// screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#7C3AED") // wizard purple
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B") // XP and streaks
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#FB923C")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E1B4B")
	Border    = lipgloss.Color("#4338CA")
)

func text(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bar(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(c)
}

var (
	Title    = text(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = text(TextDim).Align(lipgloss.Center)
	Body     = text(Text)
	Hint     = text(TextDim).Italic(true)
	Prompt   = text(Text).Bold(true).Align(lipgloss.Center)
	XP       = text(Accent).Bold(true)
	Selected = text(Primary).Bold(true)

	Correct   = text(Success).Bold(true)
	Incorrect = text(Error).Bold(true)
	TimedOut  = text(Warning).Bold(true)

	TimerFilled = bar(Secondary)
	TimerLow    = bar(Error)
	TimerEmpty  = bar(Border)

	// Card frames a round's prompt.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 3)
)

// Verdict picks the result style for a resolved round.
func Verdict(correct, timedOut bool) lipgloss.Style {
	switch {
	case correct:
		return Correct
	case timedOut:
		return TimedOut
	default:
		return Incorrect
	}
}

var modeAccents = map[string]color.Color{
	"math":     Secondary,
	"listen":   Accent,
	"fill":     Success,
	"describe": Warning,
}

// ModeAccent colors a mode label, keyed by the mode's short name.
func ModeAccent(mode string) lipgloss.Style {
	if c, ok := modeAccents[mode]; ok {
		return text(c).Bold(true)
	}
	return text(Primary).Bold(true)
}
