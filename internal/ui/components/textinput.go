package components

import (
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/ui/theme"
)

// InputKind restricts which characters an AnswerInput accepts.
type InputKind int

const (
	InputDigits InputKind = iota
	InputLetters
)

// AnswerInput wraps bubbles/textinput with a character filter and a
// result marker.
type AnswerInput struct {
	Model textinput.Model
	Kind  InputKind

	submitted bool
	correct   bool
}

// NewAnswerInput creates a focused input accepting up to limit characters.
func NewAnswerInput(placeholder string, kind InputKind, limit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Focus()
	if limit > 0 {
		ti.CharLimit = limit
	}
	return AnswerInput{Model: ti, Kind: kind}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg unless it types a character the kind rejects.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		for _, r := range kmsg.Key().Text {
			if !a.accepts(r) {
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func (a AnswerInput) accepts(r rune) bool {
	switch a.Kind {
	case InputDigits:
		return r >= '0' && r <= '9'
	default:
		return unicode.IsLetter(r)
	}
}

// Value returns the typed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Submit freezes the input and marks the result.
func (a *AnswerInput) Submit(correct bool) {
	a.submitted = true
	a.correct = correct
	a.Model.Blur()
}

// View renders the input with a ✓ or ✗ once submitted.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		if a.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}
