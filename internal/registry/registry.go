// Package registry maps game mode IDs to factories. Modes register
// themselves from init, so the platform and the CLI never name them.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// Game is one playable mode. Implementations hold pure simulation state;
// the platform owns input, timing and the terminal.
type Game interface {
	// ID is the stable key used by the CLI and for stored scores.
	ID() string
	Title() string

	// Reset starts a new run for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// ProgressAware is implemented by games that persist level progress. The
// platform binds a store before the first Reset.
type ProgressAware interface {
	BindProgress(p knife.ProgressStore)
}

// Resizable is implemented by games that follow a terminal resize without
// starting a new run.
type Resizable interface {
	Resize(w, h int)
}

// LevelSelectable is implemented by games with selectable levels.
// The level is 1-based and applies to the next Reset.
type LevelSelectable interface {
	SetStartLevel(level int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	games = make(map[string]entry)
)

// Register adds a mode. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := games[id]; ok {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(games))
	for id, e := range games {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := games[id]
	return ok
}
