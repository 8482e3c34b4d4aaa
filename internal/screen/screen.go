package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wizquest/internal/ui/layout"
)

// Screen is one page of the app. The app keeps a stack of screens and
// forwards messages to the top one.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show player status in
// the header.
type StatusProvider interface {
	Status() layout.Status
}

// PushMsg asks the app to push a screen.
type PushMsg struct {
	Screen Screen
}

// PopMsg asks the app to pop the top screen.
type PopMsg struct{}

// ReplaceMsg asks the app to swap the top screen for another.
type ReplaceMsg struct {
	Screen Screen
}

// Push returns a command that pushes s.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a command that pops the top screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopMsg{} }
}

// Replace returns a command that replaces the top screen with s.
func Replace(s Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Screen: s} }
}
