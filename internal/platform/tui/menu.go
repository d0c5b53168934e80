package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/knife"
)

type menuEntry int

const (
	entryPlay menuEntry = iota
	entryChooseLevel
	entryEndless
	entryScores
	entryQuit
)

// MenuItem is one line of the start screen.
type MenuItem struct {
	Label string
	entry menuEntry
}

// Selection is the game the player picked.
type Selection struct {
	GameID string
	Level  int // 1-based campaign level; 0 starts at the first
}

// MenuModel is the Bubble Tea model for the start screen and the level
// select.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	levels         []knife.LevelConfig
	highest        int
	levelSelect    levelSelect
	inLevelSelect  bool
	message        string
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates the start screen. progress tells which campaign
// levels are unlocked.
func NewMenuModel(progress knife.ProgressStore, levels []knife.LevelConfig, cfg core.RuntimeConfig) MenuModel {
	highest := -1
	message := ""
	if progress != nil {
		h, err := progress.LoadProgress()
		if err != nil {
			message = "Progress unavailable"
		} else {
			highest = h
		}
	}

	return MenuModel{
		items: []MenuItem{
			{Label: "Play", entry: entryPlay},
			{Label: "Choose Level", entry: entryChooseLevel},
			{Label: "Endless", entry: entryEndless},
			{Label: "High Scores", entry: entryScores},
			{Label: "Quit", entry: entryQuit},
		},
		levels:    levels,
		highest:   highest,
		message:   message,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	m.message = ""

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.items[m.cursor].entry {
		case entryPlay:
			m.selected = &Selection{GameID: blades.IDCampaign, Level: continueLevel(len(m.levels), m.highest)}
			return m, tea.Quit
		case entryChooseLevel:
			if len(m.levels) == 0 {
				m.message = "No levels configured"
				return m, nil
			}
			m.levelSelect = newLevelSelect(m.levels, m.highest, m.height)
			m.inLevelSelect = true
		case entryEndless:
			m.selected = &Selection{GameID: blades.IDEndless}
			return m, tea.Quit
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	m.message = ""

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.levelSelect.up()
	case MenuActionDown:
		m.levelSelect.down()
	case MenuActionSelect:
		level, ok := m.levelSelect.selected()
		if !ok {
			m.message = "Locked: clear the previous level first"
			return m, nil
		}
		m.selected = &Selection{GameID: blades.IDCampaign, Level: level}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuAlertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("T W I S T Y   B L A D E S", m.width)))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText("Choose a level", m.width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.levelSelect.View()))
		b.WriteString("\n")
		m.writeFooter(&b, "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit")
		return b.String()
	}

	b.WriteString(centerText(m.progressLine(), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		label := item.Label
		if item.entry == entryPlay && len(m.levels) > 0 {
			level := continueLevel(len(m.levels), m.highest)
			label = fmt.Sprintf("%s (level %d: %s)", label, level, m.levels[level-1].Name)
		}
		b.WriteString(centerText(cursor+label, m.width))
		b.WriteString("\n")
	}

	m.writeFooter(&b, "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit")
	return b.String()
}

func (m MenuModel) progressLine() string {
	cleared := m.highest + 1
	if cleared > len(m.levels) {
		cleared = len(m.levels)
	}
	return fmt.Sprintf("Levels cleared: %d/%d", cleared, len(m.levels))
}

func (m MenuModel) writeFooter(b *strings.Builder, controls string) {
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(menuAlertStyle.Render(centerText(m.message, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(menuHintStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the start screen and returns the selection result.
func RunMenu(progress knife.ProgressStore, levels []knife.LevelConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(progress, levels, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.Selected() != nil {
		result.Selection = *m.Selected()
	} else {
		result.Quit = true
	}

	return result, nil
}
