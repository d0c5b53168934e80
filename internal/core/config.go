package core

// RuntimeConfig is handed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // simulation ticks per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	Level    int  // zero-based
	GameOver bool // run over; the score is saved once
	Paused   bool
	Exit     bool // return to the menu
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
