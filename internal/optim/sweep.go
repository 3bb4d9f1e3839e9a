package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/catasim/internal/catapult"
)

// MaxSweepPoints bounds the number of angles a single sweep evaluates.
const MaxSweepPoints = 10000

type SweepPoint struct {
	AngleDeg    float64 `json:"angle_deg"`
	RangeM      float64 `json:"range_m"`
	FlightTimeS float64 `json:"flight_time_s"`
	ApexHeightM float64 `json:"apex_height_m"`
}

// Sweep launches at every angle from `from` to `to` inclusive.
func Sweep(c *catapult.Catapult, from, to, step float64) ([]SweepPoint, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, &catapult.ParamError{Param: "step", Value: step, Reason: "must be positive and finite"}
	}
	if math.IsNaN(from) || math.IsInf(from, 0) {
		return nil, &catapult.ParamError{Param: "from", Value: from, Reason: "must be finite"}
	}
	if math.IsNaN(to) || math.IsInf(to, 0) {
		return nil, &catapult.ParamError{Param: "to", Value: to, Reason: "must be finite"}
	}
	if to < from {
		return nil, fmt.Errorf("sweep: end angle %g before start %g", to, from)
	}

	span := (to-from)/step + 1e-9
	if !(span < MaxSweepPoints) {
		return nil, &catapult.ParamError{Param: "step", Value: step, Reason: fmt.Sprintf("yields more than %d angles", MaxSweepPoints)}
	}
	n := int(span) + 1
	points := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		angle := from + step*float64(i)
		r, err := c.SimulateLaunch(angle)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{
			AngleDeg:    angle,
			RangeM:      r.RangeM,
			FlightTimeS: r.FlightTimeS,
			ApexHeightM: r.ApexHeightM,
		})
	}
	return points, nil
}

// Best picks the angle and pull giving the longest range with the pull
// limited to maxPull. The catapult's pull is restored afterwards.
func Best(ctx context.Context, c *catapult.Catapult, maxPull float64, steps int) (angle, pull, rng float64, err error) {
	if !(maxPull > 0) {
		return 0, 0, 0, &catapult.ParamError{Param: "max_pull", Value: maxPull, Reason: "must be positive"}
	}
	if steps < 2 {
		return 0, 0, 0, &catapult.ParamError{Param: "steps", Value: float64(steps), Reason: "must be at least 2"}
	}

	orig := c.Pull()
	defer func() { _ = c.SetPull(orig) }()

	g := NewGridSearch(
		[]string{"angle", "pull"},
		[][]float64{Linspace(0, 90, 4*steps+1), Linspace(0, maxPull, steps)},
	)
	best, val, err := g.Search(ctx, func(p map[string]float64) (float64, error) {
		if err := c.SetPull(p["pull"]); err != nil {
			return 0, err
		}
		return c.RangeAtAngle(p["angle"])
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return best["angle"], best["pull"], val, nil
}
