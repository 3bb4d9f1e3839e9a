package catapult

import "math"

// Point is a sample of the ideal flight path.
type Point struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FlightTime returns the time until the projectile is back at launch height.
func (c *Catapult) FlightTime(angleDeg float64) (float64, error) {
	v, err := c.LaunchVelocity()
	if err != nil {
		return 0, err
	}
	return flightTime(v, angleDeg), nil
}

// ApexHeight returns the peak height above the launch point.
func (c *Catapult) ApexHeight(angleDeg float64) (float64, error) {
	v, err := c.LaunchVelocity()
	if err != nil {
		return 0, err
	}
	return apexHeight(v, angleDeg), nil
}

// Trajectory samples the flight path at evenly spaced times from launch to
// landing. Downward launches have no landing time and yield only the origin
// repeated.
func (c *Catapult) Trajectory(angleDeg float64, samples int) ([]Point, error) {
	if samples < 2 {
		return nil, invalid("samples", float64(samples), "must be at least 2")
	}
	v, err := c.LaunchVelocity()
	if err != nil {
		return nil, err
	}

	theta := radians(angleDeg)
	vx := v * math.Cos(theta)
	vy := v * math.Sin(theta)
	total := flightTime(v, angleDeg)
	if total < 0 {
		total = 0
	}

	points := make([]Point, samples)
	for i := range points {
		t := total * float64(i) / float64(samples-1)
		y := vy*t - 0.5*Gravity*t*t
		if i == samples-1 {
			y = 0
		}
		points[i] = Point{T: t, X: vx * t, Y: y}
	}
	return points, nil
}

func flightTime(v, angleDeg float64) float64 {
	return 2 * v * math.Sin(radians(angleDeg)) / Gravity
}

func apexHeight(v, angleDeg float64) float64 {
	vy := v * math.Sin(radians(angleDeg))
	return vy * vy / (2 * Gravity)
}
