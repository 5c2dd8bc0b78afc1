package config

import (
	_ "embed"
)

//go:embed defaults/deathray.yaml
var defaultDeathRayYAML []byte

// DefaultDeathRayConfig returns the default Death Ray configuration.
// It mirrors defaults/deathray.yaml and is used if the embedded file is unreadable.
func DefaultDeathRayConfig() DeathRayConfig {
	return DeathRayConfig{
		World: WorldConfig{
			PoolSize:  5000,
			BounceCap: 0,
		},
		Spawner: SpawnerConfig{
			Interval:     1.0,
			IntervalStep: 0.25,
		},
		Fall: FallConfig{
			Speed:         0.05,
			SpeedUpStep:   0.01,
			SpeedDownStep: 0.001,
		},
		Battery: BatteryConfig{
			Max:        0.8,
			Drain:      0.01,
			Regen:      0.008,
			DrainOnHit: true,
		},
		Controls: ControlsConfig{
			AimStep:        1.0,
			CannonStep:     0.1,
			BucketStep:     0.25,
			FireHoldTicks:  8,
			MouseDragReach: 0.6,
		},
		View: ViewConfig{
			ZoomStep: 0.1,
			MinZoom:  0.5,
			MaxZoom:  3.0,
			PanStep:  0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.8,
				IntervalReduction: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDeathRayYAML
}
