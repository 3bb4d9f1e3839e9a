package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/experiment"
)

const (
	DefaultMass  = 0.005
	DefaultPull  = 0.03
	DefaultAngle = 45.0
)

type Config struct {
	Name       string           `yaml:"name" json:"name"`
	Projectile ProjectileConfig `yaml:"projectile" json:"projectile"`
	Bands      BandsConfig      `yaml:"bands" json:"bands"`
	Arm        ArmConfig        `yaml:"arm" json:"arm"`
	Efficiency float64          `yaml:"efficiency" json:"efficiency"`
	Pull       float64          `yaml:"pull" json:"pull"`
	Angle      float64          `yaml:"angle" json:"angle"`
	Trials     int              `yaml:"trials" json:"trials"`
}

type ProjectileConfig struct {
	Mass float64 `yaml:"mass" json:"mass"`
	Name string  `yaml:"name" json:"name"`
}

type BandsConfig struct {
	KBand  float64 `yaml:"k_band" json:"k_band"`
	NBands int     `yaml:"n_bands" json:"n_bands"`
}

type ArmConfig struct {
	Length float64 `yaml:"length" json:"length"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Projectile: ProjectileConfig{
			Mass: DefaultMass,
			Name: catapult.DefaultProjectileName,
		},
		Bands: BandsConfig{
			KBand:  catapult.DefaultKBand,
			NBands: catapult.DefaultNBands,
		},
		Arm:        ArmConfig{Length: catapult.DefaultArmLength},
		Efficiency: catapult.DefaultEfficiency,
		Pull:       DefaultPull,
		Angle:      DefaultAngle,
		Trials:     experiment.DefaultTrials,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build assembles a loaded, pulled catapult. Parameter validation is left to
// the catapult constructors so errors keep their ParamError detail.
func (c *Config) Build() (*catapult.Catapult, error) {
	p, err := catapult.NewProjectile(c.Projectile.Mass, c.Projectile.Name)
	if err != nil {
		return nil, err
	}
	bands, err := catapult.NewBandSystem(c.Bands.KBand, c.Bands.NBands)
	if err != nil {
		return nil, err
	}
	arm, err := catapult.NewArm(c.Arm.Length)
	if err != nil {
		return nil, err
	}
	cat, err := catapult.New(bands, &arm, c.Efficiency)
	if err != nil {
		return nil, err
	}
	cat.Load(p)
	if err := cat.SetPull(c.Pull); err != nil {
		return nil, err
	}
	return cat, nil
}

// Clone returns an independent copy, so presets are never mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
