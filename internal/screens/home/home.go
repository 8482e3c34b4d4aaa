// Package home is the mode picker shown when the app starts.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/play"
	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/screens/history"
	"github.com/abhisek/wizquest/internal/screens/practice"
	"github.com/abhisek/wizquest/internal/ui/components"
	"github.com/abhisek/wizquest/internal/ui/layout"
	"github.com/abhisek/wizquest/internal/ui/theme"
)

// loadedMsg carries the player's profile and today's stats.
type loadedMsg struct {
	progress scoring.Progress
	today    scoring.Stats
	err      error
}

// startedMsg is sent once a picked game has started.
type startedMsg struct {
	game *play.Game
	err  error
}

// Screen lets the player pick a mode.
type Screen struct {
	deps   play.Deps
	player string
	level  int
	now    func() time.Time

	menu     components.Menu
	progress scoring.Progress
	today    scoring.Stats
	errMsg   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
)

// New creates the home screen for player. A positive level overrides the
// stored level for games started here.
func New(deps play.Deps, player string, level int) *Screen {
	h := &Screen{
		deps:     deps,
		player:   player,
		level:    level,
		now:      time.Now,
		progress: scoring.NewProgress(player),
	}

	var items []components.MenuItem
	for _, m := range exercise.AllModes() {
		items = append(items, components.MenuItem{
			Label:  m.DisplayName(),
			Detail: modeDetail(m),
			Action: func() tea.Cmd { return h.start(play.Single(m)) },
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "Mixed",
			Detail: "A bit of everything",
			Action: func() tea.Cmd { return h.start(play.Mixed()) },
		},
		components.MenuItem{
			Label:  "History",
			Detail: "Your latest rounds",
			Action: func() tea.Cmd { return screen.Push(history.New(h.deps.Events, h.player)) },
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	h.menu = components.NewMenu(items)
	return h
}

func modeDetail(m exercise.Mode) string {
	switch m {
	case exercise.ModeMath:
		return "Solve equations against the clock"
	case exercise.ModeListen:
		return "Catch the word, then spell it"
	case exercise.ModeFillBlank:
		return "Fill in the missing letters"
	case exercise.ModeDescribe:
		return "Guess the word from its meaning"
	default:
		return ""
	}
}

func (h *Screen) start(playlist play.Playlist) tea.Cmd {
	return func() tea.Msg {
		g, err := play.Start(context.Background(), h.deps, h.player, h.level, playlist)
		return startedMsg{game: g, err: err}
	}
}

func (h *Screen) load() tea.Msg {
	ctx := context.Background()
	msg := loadedMsg{progress: scoring.NewProgress(h.player), today: scoring.NewStats(h.now())}

	p, err := h.deps.Profiles.Load(ctx, h.player)
	if err != nil {
		msg.err = err
		return msg
	}
	if p != nil {
		msg.progress = *p
	}
	msg.today, msg.err = h.deps.Events.DailyStats(ctx, h.player, h.now())
	return msg
}

func (h *Screen) Init() tea.Cmd {
	if h.deps.Profiles == nil || h.deps.Events == nil {
		return nil
	}
	return h.load
}

func (h *Screen) Title() string { return "Home" }

func (h *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Move"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (h *Screen) Status() layout.Status {
	return layout.Status{
		Player: h.progress.Name,
		Level:  h.progress.Level,
		XP:     h.progress.TotalXP,
		Streak: h.progress.CurrentStreak,
	}
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.progress, h.today = msg.progress, msg.today
		h.errMsg = ""
		if msg.err != nil {
			h.errMsg = "Could not load progress: " + msg.err.Error()
		}
		return h, nil

	case startedMsg:
		if msg.err != nil {
			h.errMsg = "Could not start: " + msg.err.Error()
			return h, nil
		}
		return h, screen.Push(practice.New(msg.game))

	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Welcome back, %s!", h.progress.Name)))
	b.WriteString("\n")

	toNext := play.LevelXP - h.progress.TotalXP%play.LevelXP
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Level %d · %d XP to level %d", h.progress.Level, toNext, play.LevelForXP(h.progress.TotalXP)+1)))
	b.WriteString("\n\n")

	today := fmt.Sprintf("Today: %d solved · %d correct · ", h.today.TotalSolved, h.today.CorrectAnswers) +
		theme.XP.Render(fmt.Sprintf("%d XP", h.today.XPEarnedToday))
	if h.progress.BestStreak > 0 {
		today += theme.Hint.Render(fmt.Sprintf(" · best streak %d", h.progress.BestStreak))
	}
	b.WriteString(layout.Center(theme.Body.Render(today), width))
	b.WriteString("\n\n")

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if h.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Center(theme.Incorrect.Render(h.errMsg), width))
	}
	return b.String()
}
