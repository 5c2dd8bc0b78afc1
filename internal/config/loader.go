package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in each search directory.
const FileName = "deathray.yaml"

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads Death Ray configuration.
// Search order: customPath -> ~/.deathray/configs/deathray.yaml -> ./configs/deathray.yaml -> embedded default
//
// Only a custom path that cannot be read or parsed is an error; unreadable or
// invalid files further down the search path are skipped.
func Load(customPath string) (DeathRayConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DeathRayConfig{}, SourceCustom, err
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDeathRayYAML)
	if err != nil {
		return DefaultDeathRayConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// loadFile reads and parses a single config file.
func loadFile(path string) (DeathRayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeathRayConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return DeathRayConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs
// the keys it changes, and validates the result.
func Parse(data []byte) (DeathRayConfig, error) {
	cfg := DefaultDeathRayConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DeathRayConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DeathRayConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg DeathRayConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Validate reports values the game cannot run with.
func (c DeathRayConfig) Validate() error {
	var errs []error
	if c.World.PoolSize <= 0 {
		errs = append(errs, errors.New("world.pool_size must be positive"))
	}
	if c.World.BounceCap < 0 {
		errs = append(errs, errors.New("world.bounce_cap must not be negative"))
	}
	if c.Spawner.Interval <= 0 {
		errs = append(errs, errors.New("spawner.interval must be positive"))
	}
	if c.Fall.Speed <= 0 {
		errs = append(errs, errors.New("fall.speed must be positive"))
	}
	if c.Battery.Max <= 0 || c.Battery.Drain <= 0 || c.Battery.Regen < 0 {
		errs = append(errs, errors.New("battery: max and drain must be positive, regen not negative"))
	}
	if c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom {
		errs = append(errs, errors.New("view: zoom range is empty"))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not score, time or none", c.Difficulty.Progression.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".deathray", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DeathRayConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawner.Interval = 1.5
		cfg.Fall.Speed = 0.03
		cfg.Battery.DrainOnHit = false
	case DifficultyHard:
		cfg.Spawner.Interval = 0.75
		cfg.Fall.Speed = 0.07
		cfg.Difficulty.Progression.Type = "score"
	}
}
