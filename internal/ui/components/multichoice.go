package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/ui/theme"
)

// ChoiceKeys label the choices. Letters keep the digit keys free for
// typing an answer.
const ChoiceKeys = "abcdefgh"

// NumberChoices lets the player pick one of a row of numbers, either with
// the letter keys a, b, c... or with the arrows and Enter.
type NumberChoices struct {
	Values   []int
	Selected int

	// Chosen is the picked index, or -1 while the player is deciding.
	Chosen int

	// Correct is revealed after the round resolves; -1 until then.
	Correct int
}

// NewNumberChoices creates a selector over values.
func NewNumberChoices(values []int) NumberChoices {
	return NumberChoices{Values: values, Chosen: -1, Correct: -1}
}

// Update handles selection keys. Once a value is chosen further keys are
// ignored.
func (c NumberChoices) Update(msg tea.Msg) (NumberChoices, tea.Cmd) {
	if c.Chosen >= 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "up":
		c.Selected = max(c.Selected-1, 0)
	case "right", "down":
		c.Selected = min(c.Selected+1, len(c.Values)-1)
	case "enter":
		c.Chosen = c.Selected
	default:
		if i := strings.Index(ChoiceKeys, key); len(key) == 1 && i >= 0 && i < len(c.Values) {
			c.Selected = i
			c.Chosen = i
		}
	}
	return c, nil
}

// Value returns the chosen value and whether one has been picked.
func (c NumberChoices) Value() (int, bool) {
	if c.Chosen < 0 || c.Chosen >= len(c.Values) {
		return 0, false
	}
	return c.Values[c.Chosen], true
}

// Reveal marks the correct index for rendering the result.
func (c *NumberChoices) Reveal(correct int) {
	c.Correct = correct
}

// View renders the choices on one line.
func (c NumberChoices) View() string {
	cells := make([]string, len(c.Values))
	for i, v := range c.Values {
		label := fmt.Sprintf(" %c) %d ", ChoiceKeys[i], v)

		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text)
		switch {
		case c.Correct >= 0 && i == c.Correct:
			style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case c.Correct >= 0 && i == c.Chosen:
			style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case c.Correct >= 0:
			style = style.Foreground(theme.TextDim)
		case i == c.Selected:
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		cells[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
