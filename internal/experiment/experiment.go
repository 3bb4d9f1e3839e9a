package experiment

import (
	"fmt"

	"github.com/san-kum/catasim/internal/catapult"
)

const DefaultTrials = 5

// Summary collects the ranges of repeated launches.
type Summary struct {
	N        int       `json:"n" yaml:"n"`
	AngleDeg float64   `json:"angle_deg" yaml:"angle_deg"`
	Ranges   []float64 `json:"ranges_m" yaml:"ranges_m"`
	Mean     float64   `json:"mean_m" yaml:"mean_m"`
}

// Experiment repeats launches on a shared catapult. Changes made to the
// catapult between calls are visible to later trials.
type Experiment struct {
	cat *catapult.Catapult
}

func New(c *catapult.Catapult) *Experiment {
	return &Experiment{cat: c}
}

func (e *Experiment) Catapult() *catapult.Catapult {
	return e.cat
}

// RunTrials launches n times at the given angle. The model has no noise
// source, so every trial yields the same range.
func (e *Experiment) RunTrials(angleDeg float64, n int) (*Summary, error) {
	if n < 1 {
		return nil, &catapult.ParamError{Param: "trials", Value: float64(n), Reason: "must be at least 1"}
	}
	if e.cat == nil {
		return nil, fmt.Errorf("experiment has no catapult")
	}

	ranges := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		r, err := e.cat.SimulateLaunch(angleDeg)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i+1, err)
		}
		ranges = append(ranges, r.RangeM)
	}

	return &Summary{
		N:        n,
		AngleDeg: angleDeg,
		Ranges:   ranges,
		Mean:     mean(ranges),
	}, nil
}

// mean is exact when every value is the same.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	same := true
	for _, x := range xs[1:] {
		if x != xs[0] {
			same = false
			break
		}
	}
	if same {
		return xs[0]
	}

	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
