package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// Level status labels shown in the level select.
const (
	levelCleared = "cleared"
	levelOpen    = "open"
	levelLocked  = "locked"
)

// levelSelect lists the campaign levels. Only levels up to one past the
// highest completed level can be picked.
type levelSelect struct {
	levels  []knife.LevelConfig
	highest int
	table   table.Model
}

func newLevelSelect(levels []knife.LevelConfig, highest, height int) levelSelect {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 18},
		{Title: "Knives", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Status", Width: 8},
	}

	rows := make([]table.Row, len(levels))
	for i, l := range levels {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			l.Name,
			fmt.Sprintf("%d", l.RequiredHits),
			fmt.Sprintf("%.0fs", l.TimeLimit),
			levelStatus(i, highest),
		}
	}

	tableHeight := min(max(height-10, 3), len(levels)+1)

	t := styledTable(columns, rows, tableHeight)

	// Start on the level to play next.
	t.SetCursor(continueLevel(len(levels), highest) - 1)

	return levelSelect{levels: levels, highest: highest, table: t}
}

func levelStatus(index, highest int) string {
	switch {
	case index <= highest:
		return levelCleared
	case knife.Unlocked(index, highest):
		return levelOpen
	default:
		return levelLocked
	}
}

// continueLevel is the 1-based level after the highest completed one,
// capped at the last level.
func continueLevel(count, highest int) int {
	next := highest + 2
	if next > count {
		next = count
	}
	if next < 1 {
		next = 1
	}
	return next
}

func (l *levelSelect) up()   { l.table.MoveUp(1) }
func (l *levelSelect) down() { l.table.MoveDown(1) }

// selected returns the 1-based level under the cursor. ok is false for
// locked levels.
func (l levelSelect) selected() (level int, ok bool) {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.levels) {
		return 0, false
	}
	return i + 1, knife.Unlocked(i, l.highest)
}

func (l levelSelect) View() string {
	return boardFrameStyle.Render(l.table.View())
}
