package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/knife"
)

func testLevels() []knife.LevelConfig {
	return []knife.LevelConfig{
		{Index: 0, Name: "First", RequiredHits: 5, TimeLimit: 30},
		{Index: 1, Name: "Second", RequiredHits: 6, TimeLimit: 30},
		{Index: 2, Name: "Third", RequiredHits: 7, TimeLimit: 25},
	}
}

func testMenu(highest int) MenuModel {
	progress := knife.NewMemoryProgress()
	progress.Highest = highest
	return NewMenuModel(progress, testLevels(), core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
}

func press(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuPlayContinues(t *testing.T) {
	tests := []struct {
		name    string
		highest int
		want    int
	}{
		{"fresh", -1, 1},
		{"one cleared", 0, 2},
		{"all cleared", 2, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := press(testMenu(tc.highest), keyEnter)
			sel := m.Selected()
			if sel == nil {
				t.Fatal("Expected a selection")
			}
			if sel.GameID != blades.IDCampaign || sel.Level != tc.want {
				t.Errorf("Expected campaign level %d, got %+v", tc.want, *sel)
			}
		})
	}
}

func TestMenuEndless(t *testing.T) {
	m := press(testMenu(-1), keyDown, keyDown, keyEnter)
	if sel := m.Selected(); sel == nil || sel.GameID != blades.IDEndless {
		t.Errorf("Expected endless selection, got %+v", sel)
	}
}

func TestMenuLevelSelectLocks(t *testing.T) {
	// Level 1 cleared: levels 1 and 2 open, level 3 locked.
	m := press(testMenu(0), keyDown, keyEnter)
	if !m.inLevelSelect {
		t.Fatal("Expected level select")
	}

	// The cursor starts on the next level to play.
	m = press(m, keyDown, keyEnter)
	if m.Selected() != nil {
		t.Fatal("Locked level must not be selectable")
	}
	if !strings.Contains(m.View(), "Locked") {
		t.Error("Expected a locked message")
	}

	m = press(m, keyUp, keyUp, keyEnter)
	if sel := m.Selected(); sel == nil || sel.Level != 1 {
		t.Errorf("Expected level 1, got %+v", sel)
	}
}

func TestMenuLevelSelectBack(t *testing.T) {
	m := press(testMenu(-1), keyDown, keyEnter, keyEsc)
	if m.inLevelSelect || m.IsQuitting() {
		t.Error("Esc in level select should return to the start screen")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := press(testMenu(-1), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("Expected scoreboard request")
	}

	m = press(testMenu(-1), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("Expected quit")
	}
}

func TestMenuView(t *testing.T) {
	view := testMenu(0).View()
	for _, want := range []string{"T W I S T Y", "Levels cleared: 1/3", "level 2: Second", "Endless"} {
		if !strings.Contains(view, want) {
			t.Errorf("Menu view missing %q", want)
		}
	}
}

func TestContinueLevel(t *testing.T) {
	tests := []struct {
		count, highest, want int
	}{
		{3, -1, 1},
		{3, 1, 3},
		{3, 5, 3},
		{0, -1, 1},
	}
	for _, tc := range tests {
		if got := continueLevel(tc.count, tc.highest); got != tc.want {
			t.Errorf("continueLevel(%d, %d) = %d, expected %d", tc.count, tc.highest, got, tc.want)
		}
	}
}
