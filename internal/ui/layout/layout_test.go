package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestTooSmall(t *testing.T) {
	_, small := TooSmall(MinWidth, MinHeight)
	assert.False(t, small)

	notice, small := TooSmall(40, 30)
	assert.True(t, small)
	assert.Contains(t, notice, "Terminal too small!")
	assert.Contains(t, notice, "Current: 40 x 30")
}

func TestFrame_Render(t *testing.T) {
	f := Frame{
		Title:  "Practice",
		Status: Status{Player: "mia", Level: 4, Tier: "Medium", XP: 620, Streak: 3},
		Hints:  []KeyHint{{Key: "Esc", Description: "End"}},
		Width:  80,
		Height: 24,
	}

	var gotW, gotH int
	out := f.Render(func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	})

	assert.Equal(t, 80, gotW)
	assert.Equal(t, 24-lipgloss.Height(f.header())-lipgloss.Height(f.footer()), gotH)
	assert.Equal(t, 24, lipgloss.Height(out))
	for _, want := range []string{"WizQuest", "Practice", "mia · Lv 4 Medium", "620 XP", "Esc", "End", "BODY"} {
		assert.True(t, strings.Contains(out, want), "frame should contain %q", want)
	}
}

func TestFrame_NoStatus(t *testing.T) {
	f := Frame{Title: "Home", Width: 70, Height: 20}
	assert.NotContains(t, f.header(), "XP")
}
