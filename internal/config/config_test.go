package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/catasim/internal/catapult"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Projectile.Mass <= 0 {
		t.Error("mass should be positive")
	}
	if cfg.Efficiency != catapult.DefaultEfficiency {
		t.Errorf("expected efficiency %f, got %f", catapult.DefaultEfficiency, cfg.Efficiency)
	}
	if cfg.Trials != 5 {
		t.Errorf("expected 5 trials, got %d", cfg.Trials)
	}
	if _, err := cfg.Build(); err != nil {
		t.Errorf("default config should build: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pompom")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Pull != 0.03 {
		t.Errorf("expected pull 0.03, got %f", cfg.Pull)
	}

	cfg.Pull = 1
	if Presets["pompom"].Pull != 0.03 {
		t.Error("GetPreset must not expose the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		cat, err := GetPreset(name).Build()
		if err != nil {
			t.Errorf("preset %s: %v", name, err)
			continue
		}
		if _, ok := cat.Projectile(); !ok {
			t.Errorf("preset %s: expected loaded projectile", name)
		}
	}
}

func TestBuildReference(t *testing.T) {
	cat, err := GetPreset("pompom").Build()
	if err != nil {
		t.Fatal(err)
	}
	r, err := cat.RangeAtAngle(45)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-5.1376) > 1e-4 {
		t.Errorf("expected ~5.1376 m, got %f", r)
	}
	if cat.Arm().Length() != 0.18 {
		t.Errorf("expected arm 0.18, got %f", cat.Arm().Length())
	}
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
	}{
		{"mass", func(c *Config) { c.Projectile.Mass = 0 }},
		{"bands", func(c *Config) { c.Bands.NBands = 0 }},
		{"arm", func(c *Config) { c.Arm.Length = -1 }},
		{"efficiency", func(c *Config) { c.Efficiency = 1.5 }},
		{"pull", func(c *Config) { c.Pull = -0.1 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.tweak(cfg)
		if _, err := cfg.Build(); !errors.Is(err, catapult.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catapult.yaml")
	want := GetPreset("heavy")
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: %+v vs %+v", got, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("pull: 0.05\nangle: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pull != 0.05 || cfg.Angle != 30 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Bands.NBands != catapult.DefaultNBands {
		t.Errorf("expected default band count, got %d", cfg.Bands.NBands)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CATASIM_DATA_DIR", "/tmp/runs")
	t.Setenv("CATASIM_DEBUG", "true")

	e, err := ParseEnv()
	if err != nil {
		t.Fatal(err)
	}
	if e.DataDir != "/tmp/runs" || !e.Debug {
		t.Errorf("unexpected env %+v", e)
	}
}

func TestParseEnvDefaults(t *testing.T) {
	for _, key := range []string{"CATASIM_DATA_DIR", "CATASIM_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	e, err := ParseEnv()
	if err != nil {
		t.Fatal(err)
	}
	if e.DataDir != ".catasim" || e.Debug {
		t.Errorf("unexpected defaults %+v", e)
	}
}
