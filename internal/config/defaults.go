package config

import (
	_ "embed"
)

//go:embed defaults/brickshot.yaml
var defaultBrickshotYAML []byte

// DefaultBrickshotConfig returns the hardcoded brickshot configuration.
// It mirrors defaults/brickshot.yaml and is used if the embedded file
// cannot be parsed.
func DefaultBrickshotConfig() BrickshotConfig {
	return BrickshotConfig{
		Field: FieldConfig{
			BlockSize:     40,
			BallSize:      10,
			WindowWidth:   640,
			WindowHeight:  800,
			TopOffsetRows: 1,
		},
		Physics: PhysicsConfig{
			BallSpeed:    600,
			MaxFrameStep: 0.2,
			Integration:  IntegrationScaled,
			FixedStep:    10,
		},
		Shooter: ShooterConfig{
			InitialCount: 40,
			EmitInterval: 0.08,
		},
		Layout: LayoutConfig{
			Rows:          6,
			FillRatio:     0.45,
			AddBallChance: 0.12,
			BaseHealth:    3,
			MaxHealth:     60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "round",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.5,
				HealthMultiplier: 3.0,
				FillBonus:        0.25,
			},
		},
	}
}
