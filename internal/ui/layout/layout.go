// Package layout composes the header, body and footer of every frame.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/ui/theme"
)

// Smallest terminal the game renders in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the player summary in the header. A zero Status hides it.
type Status struct {
	Player string
	Level  int
	Tier   string
	XP     int
	Streak int
}

func (s Status) render() string {
	if s.Player == "" {
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return dim.Render(fmt.Sprintf("%s · Lv %d %s", s.Player, s.Level, s.Tier)) + "   " +
		theme.XP.Render(fmt.Sprintf("✦ %d XP", s.XP)) + "   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d", s.Streak))
}

// TooSmall returns a resize notice when the terminal is below the
// minimum size.
func TooSmall(width, height int) (string, bool) {
	if width >= MinWidth && height >= MinHeight {
		return "", false
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height)), true
}

// Frame is one full-screen render.
type Frame struct {
	Title  string
	Status Status
	Hints  []KeyHint
	Width  int
	Height int
}

func bordered(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func (f Frame) header() string {
	left := theme.Selected.Render("  WizQuest") + theme.Hint.Render("  ·  ") + theme.Body.Render(f.Title)
	right := f.Status.render()
	gap := max(f.Width-4-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return bordered(f.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (f Frame) footer() string {
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Hint.Italic(false).Render(h.Description)
	}
	return bordered(f.Width).Render("  " + strings.Join(parts, "   "))
}

// Render draws the frame around the body, which gets whatever height
// the header and footer leave.
func (f Frame) Render(body func(width, height int) string) string {
	header, footer := f.header(), f.footer()
	h := max(f.Height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(f.Width).Height(h).Render(body(f.Width, h))
	return header + "\n" + content + "\n" + footer
}

// Center places s horizontally centered in width.
func Center(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
