package config

import (
	_ "embed"
)

//go:embed defaults/blades.yaml
var defaultBladesYAML []byte

// DefaultBladesConfig returns the default Twisty Blades configuration.
func DefaultBladesConfig() BladesConfig {
	return BladesConfig{
		Throw: ThrowSettings{
			MaxHoldTime:   2.0,
			Cooldown:      1.0,
			SpawnInterval: 1.0,
			SpawnPolicy:   "event",
			Speed:         40,
			MinDepth:      0.1,
			MaxDepth:      0.5,
			DepthScale:    5,
			MaxPullback:   2,
		},
		Target: TargetSettings{
			Radius:      5,
			KnifeLength: 3,
			HitArc:      12,
		},
		Levels: []LevelSettings{
			{
				Name:         "Warm Up",
				RequiredHits: 5,
				TimeLimit:    30,
				Rotator:      RotatorSettings{BaseSpeed: 30, SpeedVariance: 20, ChangeInterval: 5},
			},
			{
				Name:         "Turnaround",
				RequiredHits: 6,
				TimeLimit:    30,
				Rotator: RotatorSettings{
					BaseSpeed: 45, SpeedVariance: 20, ChangeInterval: 4,
					RandomizeDirection: true,
				},
			},
			{
				Name:         "Wobble",
				RequiredHits: 7,
				TimeLimit:    35,
				Rotator: RotatorSettings{
					BaseSpeed: 60, SpeedVariance: 30, ChangeInterval: 3,
					RandomizeSpeed: true,
				},
			},
			{
				Name:         "Whirlwind",
				RequiredHits: 8,
				TimeLimit:    40,
				Rotator: RotatorSettings{
					BaseSpeed: 80, SpeedVariance: 40, ChangeInterval: 2.5,
					RandomizeDirection: true, RandomizeSpeed: true,
				},
			},
			{
				Name:         "Buzzsaw",
				RequiredHits: 10,
				TimeLimit:    45,
				Rotator: RotatorSettings{
					BaseSpeed: 110, SpeedVariance: 50, ChangeInterval: 2,
					RandomizeDirection: true, RandomizeSpeed: true,
				},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				TimeReduction:   0.3,
				ExtraHits:       4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blades", "blades_endless":
		return defaultBladesYAML
	default:
		return nil
	}
}
