package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/knife"
	"github.com/vovakirdan/twisty-blades/internal/registry"
	"github.com/vovakirdan/twisty-blades/internal/storage"
)

// SessionModel is one remote player's whole visit: start screen, scoreboard
// and games in a single program. Sub-models end their own programs with
// tea.Quit when run locally; here that is dropped and the session switches
// screens instead.
type SessionModel struct {
	store    *storage.Store
	levels   []knife.LevelConfig
	config   core.RuntimeConfig
	username string

	menu       MenuModel
	scoreboard *ScoreboardModel // non-nil while shown
	gameModel  *GameModel       // non-nil while playing
	quitting   bool
}

// NewSessionModel opens on the start screen with username's progress.
func NewSessionModel(store *storage.Store, levels []knife.LevelConfig, cfg core.RuntimeConfig, username string) SessionModel {
	m := SessionModel{store: store, levels: levels, config: cfg, username: username}
	m.toMenu()
	return m
}

// toMenu rebuilds the start screen so it shows fresh progress.
func (m *SessionModel) toMenu() {
	m.gameModel, m.scoreboard = nil, nil
	m.menu = NewMenuModel(ProgressFor(m.store, blades.IDCampaign, m.username), m.levels, m.config)
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.toMenu()
		m.scoreboard = &sb

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		game, err := registry.Create(sel.GameID)
		if err != nil {
			m.toMenu()
			return m, nil
		}
		Prepare(game, m.store, m.username, sel.Level)
		gm := NewGameModel(game, m.store, m.config)
		m.gameModel = &gm
		return m, gm.Init()
	}
	return m, nil
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb := next.(ScoreboardModel)
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		return m.quit()
	case sb.IsGoingBack():
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	switch {
	case gm.IsQuitting():
		return m.quit()
	case gm.BackToMenu():
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
