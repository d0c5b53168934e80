package knife

import (
	"io"

	"github.com/charmbracelet/log"
)

// Presenter is the HUD/menu collaborator.
type Presenter interface {
	UpdateScore(remaining int)
	UpdateTimer(seconds float64)
	ShowVictory()
	ShowLose()
}

// ProgressStore persists the highest completed level.
type ProgressStore interface {
	// SaveProgress records levelIndex as completed. Implementations keep the
	// highest index seen, so the stored value never decreases.
	SaveProgress(levelIndex int) error

	// LoadProgress returns the highest completed level index, or -1.
	LoadProgress() (int, error)
}

// Physics is the physics collaborator. Bodies are keyed by Projectile.ID.
type Physics interface {
	// Spawn places a kinematic body for a knife in the thrower's hand.
	Spawn(p *Projectile)

	// Launch makes the body dynamic and sets its velocity.
	Launch(p *Projectile, vx, vy float64)

	// Freeze pins the body in place.
	Freeze(p *Projectile)

	// Attach anchors the body at its impact point, shifted by offset along
	// the approach axis, and parents it to the target's rotating frame.
	Attach(p *Projectile, offset float64)

	// Drop releases a broken knife from gameplay.
	Drop(p *Projectile)

	// Clear removes every knife body.
	Clear()
}

// CollisionFunc is how the physics collaborator delivers collision events.
type CollisionFunc func(p *Projectile, other Category)

// SceneLoader navigates between levels and screens.
type SceneLoader interface {
	ReloadCurrentLevel()
	LoadLevel(index int) error
	GoHome()
}

// NopProgress is a ProgressStore that remembers nothing.
type NopProgress struct{}

func (NopProgress) SaveProgress(int) error     { return nil }
func (NopProgress) LoadProgress() (int, error) { return -1, nil }

// MemoryProgress is an in-memory ProgressStore.
type MemoryProgress struct {
	Highest int
	Saves   int
}

// NewMemoryProgress returns a store with no completed levels.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{Highest: -1}
}

func (m *MemoryProgress) SaveProgress(levelIndex int) error {
	m.Saves++
	if levelIndex > m.Highest {
		m.Highest = levelIndex
	}
	return nil
}

func (m *MemoryProgress) LoadProgress() (int, error) {
	return m.Highest, nil
}

// Unlocked reports whether level index is playable given the highest
// completed level: the first level and every level up to one past the
// highest completed one.
func Unlocked(index, highestCompleted int) bool {
	return index >= 0 && index <= highestCompleted+1
}

// BindPresenter forwards session events to p and returns the unsubscribe
// function.
func BindPresenter(bus *Bus, p Presenter) func() {
	return bus.Subscribe(func(ev Event) {
		switch e := ev.(type) {
		case LevelStarted:
			p.UpdateScore(e.RequiredHits)
			p.UpdateTimer(e.TimeLimit)
		case ScoreChanged:
			p.UpdateScore(e.Remaining)
		case LevelCompleted:
			p.UpdateScore(0)
			p.ShowVictory()
		case LevelFailed:
			p.ShowLose()
		}
	})
}

// discardLogger returns l, or a logger that writes nowhere when l is nil.
func discardLogger(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.New(io.Discard)
}
