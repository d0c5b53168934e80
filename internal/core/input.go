package core

// Action is a player intent, independent of the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionThrow          // Space: first press charges, second press releases
	ActionConfirm        // Enter: next level after a win
	ActionBack           // B, Escape: back to the menu
	ActionRestart        // R: replay the level
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Throw", "Confirm", "Back", "Restart", "Quit", "Pause",
}

// String returns the action name.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions pressed during one tick.
type InputFrame struct {
	pressed uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as pressed. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.pressed |= 1 << a
}

// Has reports whether a was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.pressed&(1<<a) != 0
}

// Empty reports whether nothing was pressed.
func (f InputFrame) Empty() bool {
	return f.pressed == 0
}

// Clear forgets all presses for the next tick.
func (f *InputFrame) Clear() {
	f.pressed = 0
}
