package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wizquest/internal/ui/theme"
)

// MenuItem is one menu entry. Detail is shown next to the highlighted
// entry only.
type MenuItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd
}

// Menu is a vertical list picked with the arrows, j/k, Enter, or the
// entry's number (1-9).
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch k := key.String(); k {
	case "up", "k":
		m.Selected = (m.Selected + n - 1) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		return m, m.run()
	default:
		if len(k) == 1 && k[0] >= '1' && int(k[0]-'0') <= min(n, 9) {
			m.Selected = int(k[0] - '1')
			return m, m.run()
		}
	}
	return m, nil
}

func (m Menu) run() tea.Cmd {
	if act := m.Items[m.Selected].Action; act != nil {
		return act()
	}
	return nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		line := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i != m.Selected {
			b.WriteString(theme.Body.Render("    " + line))
		} else {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
			if item.Detail != "" {
				b.WriteString("  " + theme.Hint.Render(item.Detail))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
