package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/config"
	"github.com/san-kum/catasim/internal/experiment"
	"github.com/san-kum/catasim/internal/logger"
)

// Scenario is a scripted sequence of trial series sharing a base setup.
// When loaded from a file, a base block is filled from the named preset
// or the defaults.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Base        *config.Config `yaml:"base"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides parts of the base setup. Unset fields keep the
// base value.
type ScenarioStep struct {
	Label      string   `yaml:"label"`
	Mass       *float64 `yaml:"mass"`
	KBand      *float64 `yaml:"k_band"`
	NBands     *int     `yaml:"n_bands"`
	Efficiency *float64 `yaml:"efficiency"`
	Pull       *float64 `yaml:"pull"`
	Angle      *float64 `yaml:"angle"`
	Trials     *int     `yaml:"trials"`
}

type StepResult struct {
	Label   string
	Config  *config.Config
	Report  catapult.Report
	Summary *experiment.Summary
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	// A base block only overrides the fields it names, like config.Load.
	if scenario.Base != nil {
		fill := config.DefaultConfig()
		if p := config.GetPreset(scenario.Preset); p != nil {
			fill = p
		}
		overlay := struct {
			Base *config.Config `yaml:"base"`
		}{Base: fill}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("parse scenario %s: %w", path, err)
		}
		scenario.Base = overlay.Base
	}

	return &scenario, nil
}

func (s *Scenario) baseConfig() (*config.Config, error) {
	switch {
	case s.Base != nil:
		return s.Base.Clone(), nil
	case s.Preset != "":
		cfg := config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		return cfg, nil
	default:
		return config.DefaultConfig(), nil
	}
}

func (st ScenarioStep) apply(cfg *config.Config) {
	if st.Mass != nil {
		cfg.Projectile.Mass = *st.Mass
	}
	if st.KBand != nil {
		cfg.Bands.KBand = *st.KBand
	}
	if st.NBands != nil {
		cfg.Bands.NBands = *st.NBands
	}
	if st.Efficiency != nil {
		cfg.Efficiency = *st.Efficiency
	}
	if st.Pull != nil {
		cfg.Pull = *st.Pull
	}
	if st.Angle != nil {
		cfg.Angle = *st.Angle
	}
	if st.Trials != nil {
		cfg.Trials = *st.Trials
	}
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	base, err := scenario.baseConfig()
	if err != nil {
		return nil, err
	}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		label := step.Label
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}
		logger.L().Debug("scenario.step", "scenario", scenario.Name, "step", i+1, "label", label)

		cfg := base.Clone()
		step.apply(cfg)

		cat, err := cfg.Build()
		if err != nil {
			return results, fmt.Errorf("%s: %w", label, err)
		}

		report, err := cat.SimulateLaunch(cfg.Angle)
		if err != nil {
			return results, fmt.Errorf("%s: %w", label, err)
		}

		summary, err := experiment.New(cat).RunTrials(cfg.Angle, cfg.Trials)
		if err != nil {
			return results, fmt.Errorf("%s: %w", label, err)
		}

		results = append(results, StepResult{
			Label:   label,
			Config:  cfg,
			Report:  report,
			Summary: summary,
		})
	}

	return results, nil
}

// ParameterSweep varies one setup parameter and records the range.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Report     catapult.Report
}

var sweepParams = map[string]func(*config.Config, float64){
	"mass":       func(c *config.Config, v float64) { c.Projectile.Mass = v },
	"k_band":     func(c *config.Config, v float64) { c.Bands.KBand = v },
	"n_bands":    func(c *config.Config, v float64) { c.Bands.NBands = int(v) },
	"efficiency": func(c *config.Config, v float64) { c.Efficiency = v },
	"pull":       func(c *config.Config, v float64) { c.Pull = v },
	"angle":      func(c *config.Config, v float64) { c.Angle = v },
}

// SweepParams lists the names accepted by ParameterSweep.
func SweepParams() []string {
	return []string{"angle", "efficiency", "k_band", "mass", "n_bands", "pull"}
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	set, ok := sweepParams[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s", sweep.ParamName)
	}
	if sweep.NumSteps < 2 {
		return nil, &catapult.ParamError{Param: "steps", Value: float64(sweep.NumSteps), Reason: "must be at least 2"}
	}
	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := base.Clone()
		set(cfg, paramVal)

		cat, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}
		report, err := cat.SimulateLaunch(cfg.Angle)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Report: report})
	}

	return results, nil
}
