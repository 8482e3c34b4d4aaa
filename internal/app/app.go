package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/ui/layout"
)

// Model is the root Bubble Tea model. It owns a stack of screens.
type Model struct {
	stack  []screen.Screen
	width  int
	height int
}

// New creates a Model showing initial.
func New(initial screen.Screen) Model {
	return Model{stack: []screen.Screen{initial}}
}

func (m Model) Init() tea.Cmd {
	return m.active().Init()
}

func (m Model) active() screen.Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of screens on the stack.
func (m Model) Depth() int { return len(m.stack) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.PushMsg:
		m.stack = append(m.stack, msg.Screen)
		return m, msg.Screen.Init()

	case screen.ReplaceMsg:
		m.stack[len(m.stack)-1] = msg.Screen
		return m, msg.Screen.Init()

	case screen.PopMsg:
		if len(m.stack) <= 1 {
			return m, tea.Quit
		}
		m.stack = m.stack[:len(m.stack)-1]
		// The revealed screen re-initializes so it can refresh its data.
		return m, m.active().Init()
	}

	active := m.active()
	if active == nil {
		return m, nil
	}
	updated, cmd := active.Update(msg)
	m.stack[len(m.stack)-1] = updated
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if notice, small := layout.TooSmall(m.width, m.height); small {
		v.SetContent(notice)
		return v
	}

	active := m.active()
	frame := layout.Frame{
		Title:  active.Title(),
		Hints:  []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}},
		Width:  m.width,
		Height: m.height,
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		frame.Status = sp.Status()
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		frame.Hints = append(hp.KeyHints(), frame.Hints...)
	}
	v.SetContent(frame.Render(active.View))
	return v
}

// Run starts the Bubble Tea program with initial as the first screen.
func Run(initial screen.Screen) error {
	if _, err := tea.NewProgram(New(initial)).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
