// Package blades is the Twisty Blades game: knives are thrown at a spinning
// target, and a level is won once enough of them stick before the clock
// runs out. A knife that hits another knife loses the level.
package blades

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twisty-blades/internal/config"
	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/knife"
	"github.com/vovakirdan/twisty-blades/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registered game IDs.
const (
	IDCampaign = "blades"
	IDEndless  = "blades_endless"
)

const (
	hudHeight = 2
	// endlessAdvanceSeconds is how long the victory panel stays up before
	// endless mode moves on by itself.
	endlessAdvanceSeconds = 1.5
)

// ErrLevelActive is returned by LoadLevel while a level is being played.
var ErrLevelActive = errors.New("blades: level in progress")

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements Twisty Blades. It is the composition root of the level
// session, the thrower, the impact resolver and the arena.
type Game struct {
	mode     Mode
	progress knife.ProgressStore
	logger   *log.Logger

	runtime    core.RuntimeConfig
	cfg        config.BladesConfig
	ramp       config.Ramp
	rng        *rand.Rand

	bus      *knife.Bus
	session  *knife.Session
	thrower  *knife.Thrower
	resolver *knife.Resolver
	arena    *Arena
	rotator  *Rotator
	hud      *HUD

	tick            uint64
	dt              float64
	now             float64 // Simulation seconds; stops while paused
	startLevel      int // 1-based, consumed by Reset
	levelIndex      int
	levelStartScore int
	score           int // Knives stuck during the run
	levelsCleared   int
	wonTimer        float64

	won      bool // Campaign finished
	gameOver bool
	paused   bool
	exit     bool
	tooSmall bool
	err      error // Setup failure, shown instead of the arena
}

var _ knife.SceneLoader = (*Game)(nil)

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Twisty Blades (Endless)"
	}
	return "Twisty Blades"
}

// BindProgress sets where completed levels are saved. Without one, progress
// is kept in memory for the lifetime of the game.
func (g *Game) BindProgress(p knife.ProgressStore) {
	g.progress = p
}

// SetStartLevel sets the starting campaign level (1-based). 0 means start
// from the beginning. It is consumed by the next Reset.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Resize adapts the arena to a new screen size. The level being played
// starts over on the new layout.
func (g *Game) Resize(w, h int) {
	if g.session == nil || (w == g.runtime.ScreenW && h == g.runtime.ScreenH) {
		return
	}
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	layout := g.layout()
	g.tooSmall = !fits(layout)
	if g.won || g.err != nil {
		g.arena = NewArena(layout, g.cfg.Target.HitArc)
		return
	}

	score := g.levelStartScore
	if err := g.build(layout); err != nil {
		g.fail(err)
		return
	}
	g.score = score
	g.gameOver = false
	if err := g.LoadLevel(g.levelIndex); err != nil {
		g.fail(err)
	}
}

// Reset builds a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.logger = logger.With("game", g.ID())
	if g.progress == nil {
		g.progress = knife.NewMemoryProgress()
	}

	cfg := loadConfig(g.logger)
	g.cfg = cfg
	g.ramp = config.NewRamp(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.tick = 0
	g.dt = 1 / float64(runtime.TickRate)
	g.now = 0
	g.score = 0
	g.levelStartScore = 0
	g.levelsCleared = 0
	g.wonTimer = 0
	g.won = false
	g.gameOver = false
	g.paused = false
	g.exit = false
	g.err = nil

	start := 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= len(cfg.Levels) {
		start = g.startLevel - 1
	}
	g.startLevel = 0 // Reset after use

	layout := g.layout()
	g.tooSmall = !fits(layout)

	if err := g.build(layout); err != nil {
		g.fail(err)
		return
	}
	if err := g.LoadLevel(start); err != nil {
		g.fail(err)
	}
}

// layout centers the target near the top and the hand at the bottom.
func (g *Game) layout() Layout {
	t := g.cfg.Target
	pullback := math.Ceil(g.cfg.Throw.MaxPullback)
	return Layout{
		Width:       g.runtime.ScreenW,
		Height:      g.runtime.ScreenH,
		CenterX:     float64(g.runtime.ScreenW / 2),
		CenterY:     float64(hudHeight) + 1 + t.Radius,
		Radius:      t.Radius,
		KnifeLength: t.KnifeLength,
		HandY:       float64(g.runtime.ScreenH) - t.KnifeLength - pullback,
	}
}

// fits reports whether the arena has room for the target, the stuck knives
// below it and the knife in hand.
func fits(l Layout) bool {
	minW := 2*(l.Radius+l.KnifeLength)*cellAspect + 4
	if float64(l.Width) < minW {
		return false
	}
	return l.HandY >= l.CenterY+l.Radius+l.KnifeLength+2
}

// build wires the level machinery onto a new event bus.
func (g *Game) build(layout Layout) error {
	throwCfg, err := g.cfg.Throw.ThrowConfig()
	if err != nil {
		return err
	}

	g.bus = knife.NewBus()
	g.arena = NewArena(layout, g.cfg.Target.HitArc)
	g.hud = NewHUD()

	if g.session, err = knife.NewSession(g.bus, g.progress, g.logger); err != nil {
		return err
	}
	if g.thrower, err = knife.NewThrower(throwCfg, g.bus, g.arena, g.logger); err != nil {
		return err
	}
	if g.resolver, err = knife.NewResolver(g.session, g.arena, g.logger); err != nil {
		return err
	}

	g.arena.OnCollision(g.resolver.CollisionFunc())
	g.arena.OnLost(g.thrower.OnProjectileLost)
	knife.BindPresenter(g.bus, g.hud)
	g.bus.Subscribe(g.onEvent)
	return nil
}

func (g *Game) fail(err error) {
	g.err = err
	g.gameOver = true
	g.logger.Error("cannot start level", "error", err)
}

// onEvent keeps the run score and end state in step with the session.
func (g *Game) onEvent(ev knife.Event) {
	switch e := ev.(type) {
	case knife.LevelStarted:
		g.hud.ShowIntro()
	case knife.ScoreChanged:
		g.score++
	case knife.LevelCompleted:
		g.score++
		g.levelsCleared++
		g.wonTimer = 0
	case knife.LevelFailed:
		g.gameOver = true
		g.logger.Info("run over", "score", g.score, "reason", e.Reason)
	}
}

// LoadLevel starts level index. Campaign indexes must exist; endless
// indexes wrap around the level list and get harder every lap.
func (g *Game) LoadLevel(index int) error {
	if g.session == nil {
		return fmt.Errorf("%w: game not reset", knife.ErrMissingCollaborator)
	}
	if g.session.Active() {
		return ErrLevelActive
	}
	if index < 0 || (g.mode == ModeCampaign && index >= len(g.cfg.Levels)) {
		return fmt.Errorf("%w: no level %d", knife.ErrInvalidLevel, index)
	}

	settings := g.cfg.Level(index)
	level := settings.LevelConfig(index)
	g.rotator = NewRotator(settings.Rotator, g.rng)

	if g.mode == ModeEndless {
		level = g.ramp.Apply(level, g.score, int(g.tick))
		g.rotator.SetMultiplier(g.ramp.SpinFactor(g.score, int(g.tick)))
	}

	g.levelIndex = index
	g.levelStartScore = g.score
	g.gameOver = false
	return g.session.Start(level)
}

// ReloadCurrentLevel restarts the level being played, rolling the score
// back to where the level began.
func (g *Game) ReloadCurrentLevel() {
	if g.session == nil {
		return
	}
	if g.won {
		return
	}
	g.score = g.levelStartScore
	g.gameOver = false
	g.rotator = NewRotator(g.cfg.Level(g.levelIndex).Rotator, g.rng)
	if g.mode == ModeEndless {
		g.rotator.SetMultiplier(g.ramp.SpinFactor(g.score, int(g.tick)))
	}
	g.session.Restart()
}

// GoHome asks the platform to return to the menu.
func (g *Game) GoHome() {
	g.exit = true
}

// nextLevel advances after a won level.
func (g *Game) nextLevel() {
	next := g.levelIndex + 1
	if g.mode == ModeCampaign && next >= len(g.cfg.Levels) {
		g.won = true
		g.gameOver = true
		g.hud.Hide()
		g.logger.Info("campaign complete", "score", g.score)
		return
	}
	if err := g.LoadLevel(next); err != nil {
		g.fail(err)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionBack) {
		g.GoHome()
		return core.StepResult{State: g.State()}
	}
	if g.err != nil || g.exit {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.ReloadCurrentLevel()
	}
	if in.Has(core.ActionPause) && !g.session.Status().Terminal() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.won {
		return core.StepResult{State: g.State()}
	}

	if g.session.Status() == knife.StatusWon {
		if in.Has(core.ActionConfirm) {
			g.nextLevel()
			return core.StepResult{State: g.State()}
		}
		if g.mode == ModeEndless {
			g.wonTimer += g.dt
			if g.wonTimer >= endlessAdvanceSeconds {
				g.nextLevel()
				return core.StepResult{State: g.State()}
			}
		}
	}

	// No key release in a terminal: Throw toggles charge and release.
	if in.Has(core.ActionThrow) {
		if g.thrower.Charging() {
			g.thrower.Release(g.now)
		} else {
			g.thrower.BeginCharge(g.now)
		}
	}

	g.now += g.dt
	g.rotator.Update(g.dt)
	g.arena.Step(g.dt, g.rotator.Angle())
	g.thrower.Tick(g.now)
	g.session.Tick(g.dt)

	if g.session.Active() {
		g.hud.UpdateTimer(g.session.TimeLeft())
	}
	g.hud.Update(g.dt)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.levelIndex,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Exit:     g.exit,
	}
}

// Err returns the setup error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// loadConfig reads the configured levels, falling back to the defaults
// when the file cannot be used.
func loadConfig(l *log.Logger) config.BladesConfig {
	cfg, err := config.LoadBlades(configPath)
	if err != nil {
		l.Warn("using default config", "error", err)
		cfg = config.DefaultBladesConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBladesPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Campaign returns the campaign levels in play order.
func Campaign() []knife.LevelConfig {
	cfg := loadConfig(logger)
	levels := make([]knife.LevelConfig, len(cfg.Levels))
	for i, l := range cfg.Levels {
		levels[i] = l.LevelConfig(i)
	}
	return levels
}
