// Package config provides YAML-based game configuration loading and
// difficulty management for Death Ray.
package config

// DeathRayConfig contains all configuration for the Death Ray game.
type DeathRayConfig struct {
	World      WorldConfig      `yaml:"world"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Fall       FallConfig       `yaml:"fall"`
	Battery    BatteryConfig    `yaml:"battery"`
	Controls   ControlsConfig   `yaml:"controls"`
	View       ViewConfig       `yaml:"view"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig sizes the simulation.
type WorldConfig struct {
	PoolSize  int `yaml:"pool_size"`
	BounceCap int `yaml:"bounce_cap"` // 0 = number of mirrors + 1
}

// SpawnerConfig defines how often new blocks appear.
type SpawnerConfig struct {
	Interval     float64 `yaml:"interval"`      // Seconds between spawns
	IntervalStep float64 `yaml:"interval_step"` // Change per key press
}

// FallConfig defines block descent speed.
type FallConfig struct {
	Speed         float64 `yaml:"speed"` // World units per tick
	SpeedUpStep   float64 `yaml:"speed_up_step"`
	SpeedDownStep float64 `yaml:"speed_down_step"`
}

// BatteryConfig defines the death ray energy budget.
type BatteryConfig struct {
	Max        float64 `yaml:"max"`
	Drain      float64 `yaml:"drain"`
	Regen      float64 `yaml:"regen"`
	DrainOnHit bool    `yaml:"drain_on_hit"`
}

// ControlsConfig defines keyboard step sizes.
type ControlsConfig struct {
	AimStep        float64 `yaml:"aim_step"`         // Degrees per press
	CannonStep     float64 `yaml:"cannon_step"`      // World units per press
	BucketStep     float64 `yaml:"bucket_step"`      // World units per press
	FireHoldTicks  int     `yaml:"fire_hold_ticks"`  // Ticks a single fire press keeps the trigger held
	MouseDragReach float64 `yaml:"mouse_drag_reach"` // World-unit radius for grabbing the cannon
}

// ViewConfig defines the camera limits.
type ViewConfig struct {
	ZoomStep float64 `yaml:"zoom_step"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	PanStep  float64 `yaml:"pan_step"`
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
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to fall speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
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
