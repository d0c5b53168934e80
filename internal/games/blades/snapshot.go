package blades

import "github.com/vovakirdan/twisty-blades/internal/knife"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateLevelFailed  GameStateType = "level_failed"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
	StateError        GameStateType = "error"
)

// Snapshot captures the game state for determinism testing and debugging.
type Snapshot struct {
	Tick       uint64
	Level      int    // Current level (1-indexed for display)
	Mode       string // "campaign" or "endless"
	Score      int
	Remaining  int
	TimeLeft   float64
	Rotation   float64
	Stuck      int
	Flying     int
	Generation uint64
	Panel      Panel
	State      GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.err != nil || g.session == nil {
		return Snapshot{Tick: g.tick, Mode: string(g.mode), State: StateError}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.paused:
		state = StatePaused
	case g.session.Status() == knife.StatusWon:
		state = StateLevelCleared
	case g.session.Status() == knife.StatusLost:
		state = StateLevelFailed
	}

	return Snapshot{
		Tick:       g.tick,
		Level:      g.levelIndex + 1,
		Mode:       string(g.mode),
		Score:      g.score,
		Remaining:  g.session.Remaining(),
		TimeLeft:   g.session.TimeLeft(),
		Rotation:   g.arena.Rotation(),
		Stuck:      g.arena.Stuck(),
		Flying:     g.arena.Flying(),
		Generation: g.session.Generation(),
		Panel:      g.hud.Panel(),
		State:      state,
	}
}
