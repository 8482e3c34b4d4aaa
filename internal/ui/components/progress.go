package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/ui/theme"
)

// LowTimeSecs is the remaining time at which the countdown turns red.
const LowTimeSecs = 5

// Countdown displays the round's remaining seconds as a shrinking bar.
type Countdown struct {
	Remaining int
	Total     int
	Width     int
}

// NewCountdown creates a countdown bar.
func NewCountdown(remaining, total, width int) Countdown {
	return Countdown{Remaining: remaining, Total: total, Width: width}
}

// Fraction returns the share of time left, in [0, 1].
func (c Countdown) Fraction() float64 {
	if c.Total <= 0 {
		return 0
	}
	return min(max(float64(c.Remaining)/float64(c.Total), 0), 1)
}

// View renders the countdown bar followed by the seconds left.
func (c Countdown) View() string {
	label := fmt.Sprintf("  %2ds", c.Remaining)
	barWidth := max(c.Width-lipgloss.Width(label), 4)

	filled := min(int(float64(barWidth)*c.Fraction()+0.5), barWidth)
	fill := theme.TimerFilled
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.Remaining <= LowTimeSecs {
		fill = theme.TimerLow
		labelStyle = labelStyle.Foreground(theme.Error).Bold(true)
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.TimerEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		labelStyle.Render(label)
}
