package knife

// Event is a notification published on a Bus.
type Event interface {
	knifeEvent()
}

// LevelStarted is published when a session becomes Active.
type LevelStarted struct {
	Level        int
	RequiredHits int
	TimeLimit    float64
	Generation   uint64
}

func (LevelStarted) knifeEvent() {}

// ScoreChanged is published after a hit that did not finish the level.
type ScoreChanged struct {
	Remaining int
}

func (ScoreChanged) knifeEvent() {}

// ProjectileRequested asks the thrower for the next knife.
type ProjectileRequested struct {
	Generation uint64
}

func (ProjectileRequested) knifeEvent() {}

// LevelCompleted is published once when the last required knife sticks.
type LevelCompleted struct {
	Level   int
	Elapsed float64
}

func (LevelCompleted) knifeEvent() {}

// LevelFailed is published once when the level is lost.
type LevelFailed struct {
	Level  int
	Reason FailReason
}

func (LevelFailed) knifeEvent() {}

// Listener receives published events.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

// Bus is a synchronous observer registry. Publish delivers an event to every
// listener, in subscription order, before it returns.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to all listeners. Listeners subscribed during delivery
// receive only later events.
func (b *Bus) Publish(ev Event) {
	subs := b.subs
	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.subs)
}
