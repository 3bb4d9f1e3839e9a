package config

import "sort"

var Presets = map[string]*Config{
	"pompom": {
		Name:       "pompom",
		Projectile: ProjectileConfig{Mass: 0.005, Name: "5g pompom"},
		Bands:      BandsConfig{KBand: 200.0, NBands: 4},
		Arm:        ArmConfig{Length: 0.18},
		Efficiency: 0.35, Pull: 0.03, Angle: 45.0, Trials: 5,
	},
	"pingpong": {
		Name:       "pingpong",
		Projectile: ProjectileConfig{Mass: 0.0027, Name: "ping pong ball"},
		Bands:      BandsConfig{KBand: 150.0, NBands: 2},
		Arm:        ArmConfig{Length: 0.2},
		Efficiency: 0.3, Pull: 0.04, Angle: 40.0, Trials: 5,
	},
	"heavy": {
		Name:       "heavy",
		Projectile: ProjectileConfig{Mass: 0.05, Name: "clay ball"},
		Bands:      BandsConfig{KBand: 250.0, NBands: 8},
		Arm:        ArmConfig{Length: 0.3},
		Efficiency: 0.4, Pull: 0.08, Angle: 45.0, Trials: 10,
	},
	"gentle": {
		Name:       "gentle",
		Projectile: ProjectileConfig{Mass: 0.01, Name: "foam cube"},
		Bands:      BandsConfig{KBand: 100.0, NBands: 1},
		Arm:        ArmConfig{Length: 0.15},
		Efficiency: 0.25, Pull: 0.02, Angle: 30.0, Trials: 3,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
