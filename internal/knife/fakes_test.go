package knife

// fakePhysics records collaborator calls.
type fakePhysics struct {
	spawned  []uint64
	launched []uint64
	frozen   []uint64
	attached map[uint64]float64
	dropped  []uint64
	clears   int
	lastVY   float64
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{attached: make(map[uint64]float64)}
}

func (f *fakePhysics) Spawn(p *Projectile) { f.spawned = append(f.spawned, p.ID) }

func (f *fakePhysics) Launch(p *Projectile, _, vy float64) {
	f.launched = append(f.launched, p.ID)
	f.lastVY = vy
}

func (f *fakePhysics) Freeze(p *Projectile) { f.frozen = append(f.frozen, p.ID) }

func (f *fakePhysics) Attach(p *Projectile, offset float64) { f.attached[p.ID] = offset }

func (f *fakePhysics) Drop(p *Projectile) { f.dropped = append(f.dropped, p.ID) }

func (f *fakePhysics) Clear() { f.clears++ }

// fakePresenter records HUD calls.
type fakePresenter struct {
	score    int
	timer    float64
	victory  int
	lose     int
	scoreLog []int
}

func (f *fakePresenter) UpdateScore(n int) {
	f.score = n
	f.scoreLog = append(f.scoreLog, n)
}

func (f *fakePresenter) UpdateTimer(s float64) { f.timer = s }
func (f *fakePresenter) ShowVictory()          { f.victory++ }
func (f *fakePresenter) ShowLose()             { f.lose++ }

// recorder collects every event published on a bus.
type recorder struct {
	events []Event
}

func (r *recorder) listen(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func isCompleted(ev Event) bool {
	_, ok := ev.(LevelCompleted)
	return ok
}

func isFailed(ev Event) bool {
	_, ok := ev.(LevelFailed)
	return ok
}

func isStarted(ev Event) bool {
	_, ok := ev.(LevelStarted)
	return ok
}

// rig wires a full core the way the game composition root does.
type rig struct {
	bus      *Bus
	session  *Session
	thrower  *Thrower
	resolver *Resolver
	physics  *fakePhysics
	progress *MemoryProgress
	events   *recorder
}

func newRig(cfg ThrowConfig) *rig {
	bus := NewBus()
	rec := &recorder{}
	bus.Subscribe(rec.listen)

	progress := NewMemoryProgress()
	physics := newFakePhysics()

	session, err := NewSession(bus, progress, nil)
	if err != nil {
		panic(err)
	}
	thrower, err := NewThrower(cfg, bus, physics, nil)
	if err != nil {
		panic(err)
	}
	resolver, err := NewResolver(session, physics, nil)
	if err != nil {
		panic(err)
	}

	return &rig{
		bus:      bus,
		session:  session,
		thrower:  thrower,
		resolver: resolver,
		physics:  physics,
		progress: progress,
		events:   rec,
	}
}

// throwAt charges at now and releases after hold seconds.
func (r *rig) throwAt(now, hold float64) *Projectile {
	r.thrower.BeginCharge(now)
	return r.thrower.Release(now + hold)
}
