package config

import "github.com/vovakirdan/twisty-blades/internal/knife"

// minTimeShare is the smallest fraction of a level's time limit the ramp
// may leave, so every level stays winnable.
const minTimeShare = 0.25

// Ramp scales endless levels with the player's score or play time.
type Ramp struct {
	cfg DifficultyConfig
}

// NewRamp creates a ramp from cfg.
func NewRamp(cfg DifficultyConfig) Ramp {
	return Ramp{cfg: cfg}
}

// Level returns the difficulty in [0, 1]. It starts at the configured
// initial level and reaches 1 at progression.max_at.
func (r Ramp) Level(score, ticks int) float64 {
	start := min(max(r.cfg.InitialLevel, 0), 1)
	if !r.cfg.Enabled {
		return start
	}

	var done float64
	maxAt := float64(max(r.cfg.Progression.MaxAt, 1))
	switch r.cfg.Progression.Type {
	case "score":
		done = float64(score) / maxAt
	case "time":
		done = float64(ticks) / maxAt
	default:
		return start
	}
	return start + min(max(done, 0), 1)*(1-start)
}

// SpinFactor is the multiplier applied to the target's spin speed.
func (r Ramp) SpinFactor(score, ticks int) float64 {
	return 1 + r.Level(score, ticks)*r.cfg.Scaling.SpeedMultiplier
}

// Apply shortens the time limit and adds required hits to l.
func (r Ramp) Apply(l knife.LevelConfig, score, ticks int) knife.LevelConfig {
	level := r.Level(score, ticks)
	l.TimeLimit = max(l.TimeLimit*(1-level*r.cfg.Scaling.TimeReduction), l.TimeLimit*minTimeShare)
	l.RequiredHits += int(level * float64(r.cfg.Scaling.ExtraHits))
	return l
}
