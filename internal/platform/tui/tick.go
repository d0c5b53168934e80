// Package tui runs Twisty Blades in the terminal with Bubble Tea: the start
// screen, the level select, the scoreboard and the game loop, locally or
// over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends one tick after 1/tickRate seconds.
// The game advances a fixed step per tick, so a slow terminal slows the
// game instead of skipping frames.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
