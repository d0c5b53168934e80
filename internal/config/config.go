// Package config provides YAML-based game configuration loading and
// difficulty management for Twisty Blades.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// ErrInvalidConfig is returned by Validate for unusable configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BladesConfig contains all configuration for the knife-throwing game.
type BladesConfig struct {
	Throw      ThrowSettings    `yaml:"throw"`
	Target     TargetSettings   `yaml:"target"`
	Levels     []LevelSettings  `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ThrowSettings tunes the hand-held knife. Times are in seconds.
type ThrowSettings struct {
	MaxHoldTime   float64 `yaml:"max_hold_time"`
	Cooldown      float64 `yaml:"cooldown"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	SpawnPolicy   string  `yaml:"spawn_policy"` // "event" or "timer"
	Speed         float64 `yaml:"speed"`        // Cells per second
	MinDepth      float64 `yaml:"min_depth"`
	MaxDepth      float64 `yaml:"max_depth"`
	DepthScale    float64 `yaml:"depth_scale"`
	MaxPullback   float64 `yaml:"max_pullback"` // Cells at full charge
}

// TargetSettings defines the target disc geometry in terminal cells.
type TargetSettings struct {
	Radius      float64 `yaml:"radius"`
	KnifeLength float64 `yaml:"knife_length"`
	HitArc      float64 `yaml:"hit_arc"` // Degrees; stuck knives closer than this collide
}

// RotatorSettings drives the target spin for one level.
type RotatorSettings struct {
	BaseSpeed          float64 `yaml:"base_speed"`     // Degrees per second
	SpeedVariance      float64 `yaml:"speed_variance"` // Max deviation from base speed
	ChangeInterval     float64 `yaml:"change_interval"`
	RandomizeDirection bool    `yaml:"randomize_direction"`
	RandomizeSpeed     bool    `yaml:"randomize_speed"`
}

// LevelSettings describes one level.
type LevelSettings struct {
	Name         string          `yaml:"name"`
	RequiredHits int             `yaml:"required_hits"`
	TimeLimit    float64         `yaml:"time_limit"`
	Rotator      RotatorSettings `yaml:"rotator"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to spin speed at max difficulty
	TimeReduction   float64 `yaml:"time_reduction"`   // Fraction of the time limit removed at max difficulty
	ExtraHits       int     `yaml:"extra_hits"`       // Knives added to each level at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values yield "".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the config for values the game cannot run with.
func (c BladesConfig) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: no levels defined", ErrInvalidConfig)
	}
	for i, lvl := range c.Levels {
		if err := lvl.LevelConfig(i).Validate(); err != nil {
			return fmt.Errorf("%w: level %d: %w", ErrInvalidConfig, i+1, err)
		}
		if lvl.Rotator.SpeedVariance < 0 || lvl.Rotator.ChangeInterval < 0 {
			return fmt.Errorf("%w: level %d: negative rotator setting", ErrInvalidConfig, i+1)
		}
	}
	if _, err := c.Throw.ThrowConfig(); err != nil {
		return fmt.Errorf("%w: throw: %w", ErrInvalidConfig, err)
	}
	if c.Target.Radius < 2 || c.Target.KnifeLength < 1 {
		return fmt.Errorf("%w: target radius %g or knife length %g too small",
			ErrInvalidConfig, c.Target.Radius, c.Target.KnifeLength)
	}
	if c.Target.HitArc <= 0 || c.Target.HitArc >= 180 {
		return fmt.Errorf("%w: hit arc must be in (0, 180), got %g", ErrInvalidConfig, c.Target.HitArc)
	}
	return nil
}

// Level returns the settings for level index, wrapping around in endless
// play. Callers must not pass a negative index.
func (c BladesConfig) Level(index int) LevelSettings {
	return c.Levels[index%len(c.Levels)]
}

// LevelConfig converts the settings into the session's level config.
func (l LevelSettings) LevelConfig(index int) knife.LevelConfig {
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", index+1)
	}
	return knife.LevelConfig{
		Index:        index,
		Name:         name,
		RequiredHits: l.RequiredHits,
		TimeLimit:    l.TimeLimit,
	}
}

// ThrowConfig converts the settings into the thrower's config.
func (t ThrowSettings) ThrowConfig() (knife.ThrowConfig, error) {
	policy, err := knife.ParseSpawnPolicy(t.SpawnPolicy)
	if err != nil {
		return knife.ThrowConfig{}, err
	}
	cfg := knife.ThrowConfig{
		MaxHoldTime:   t.MaxHoldTime,
		Cooldown:      t.Cooldown,
		SpawnInterval: t.SpawnInterval,
		ThrowSpeed:    t.Speed,
		MinDepth:      t.MinDepth,
		MaxDepth:      t.MaxDepth,
		DepthScale:    t.DepthScale,
		MaxPullback:   t.MaxPullback,
		Policy:        policy,
	}
	return cfg, cfg.Validate()
}
