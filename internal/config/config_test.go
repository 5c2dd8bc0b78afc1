package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedMatchesBuiltin(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if cfg != DefaultDeathRayConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultDeathRayConfig())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	cfg, src, err := Load("")
	if err != nil || src != SourceEmbedded {
		t.Fatalf("Load() = %v, %v, expected embedded", src, err)
	}
	if cfg.Fall.Speed != 0.05 {
		t.Errorf("Fall.Speed = %v, expected 0.05", cfg.Fall.Speed)
	}

	writeConfig(t, filepath.Join(work, "configs", FileName), "fall:\n  speed: 0.02\n")
	cfg, src, _ = Load("")
	if src != SourceLocal || cfg.Fall.Speed != 0.02 {
		t.Errorf("Load() = %v speed %v, expected local 0.02", src, cfg.Fall.Speed)
	}

	writeConfig(t, filepath.Join(home, ".deathray", "configs", FileName), "fall:\n  speed: 0.03\n")
	cfg, src, _ = Load("")
	if src != SourceUser || cfg.Fall.Speed != 0.03 {
		t.Errorf("Load() = %v speed %v, expected user 0.03", src, cfg.Fall.Speed)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeConfig(t, custom, "fall:\n  speed: 0.04\n")
	cfg, src, _ = Load(custom)
	if src != SourceCustom || cfg.Fall.Speed != 0.04 {
		t.Errorf("Load(custom) = %v speed %v, expected custom 0.04", src, cfg.Fall.Speed)
	}
	if cfg.Battery.Max != 0.8 {
		t.Errorf("Battery.Max = %v, expected default kept for missing keys", cfg.Battery.Max)
	}
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, filepath.Join(home, ".deathray", "configs", FileName), "fall: [not a map")

	_, src, err := Load("")
	if err != nil || src != SourceEmbedded {
		t.Errorf("Load() = %v, %v, expected embedded fallback", src, err)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeConfig(t, bad, "spawner:\n  interval: -1\ndifficulty:\n  progression:\n    type: sometimes\n")
	_, _, err := Load(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"config:", "spawner.interval", "sometimes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultDeathRayConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg != DefaultDeathRayConfig() {
		t.Error("round trip changed the config")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
	}{
		{"", false, 0},
		{DifficultyFixed, false, 0},
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultDeathRayConfig()
			ApplyPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, IntervalReduction: 0.5},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score        int
		wantLevel    float64
		wantSpeed    float64
		wantInterval float64
	}{
		{0, 0, 0.05, 1.0},
		{50, 0.5, 0.075, 0.75},
		{100, 1, 0.1, 0.5},
		{500, 1, 0.1, 0.5},
	}

	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); got != tt.wantLevel {
			t.Errorf("Level(%d) = %v, expected %v", tt.score, got, tt.wantLevel)
		}
		if got := dm.FallSpeed(0.05, tt.score, 0); !approx(got, tt.wantSpeed) {
			t.Errorf("FallSpeed(%d) = %v, expected %v", tt.score, got, tt.wantSpeed)
		}
		if got := dm.SpawnInterval(1.0, tt.score, 0); !approx(got, tt.wantInterval) {
			t.Errorf("SpawnInterval(%d) = %v, expected %v", tt.score, got, tt.wantInterval)
		}
	}

	dm.SetEnabled(false)
	if got := dm.FallSpeed(0.05, 100, 0); got != 0.05 {
		t.Errorf("disabled FallSpeed = %v, expected base", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 600},
	})

	if got := dm.Level(0, 300); got != 0.75 {
		t.Errorf("Level(ticks=300) = %v, expected 0.75", got)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
