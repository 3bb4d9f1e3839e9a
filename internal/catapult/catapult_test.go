package catapult

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func newLoaded(t *testing.T, mass, pull float64) *Catapult {
	t.Helper()
	p, err := NewProjectile(mass, "test")
	if err != nil {
		t.Fatalf("projectile: %v", err)
	}
	c, err := New(DefaultBandSystem(), nil, DefaultEfficiency)
	if err != nil {
		t.Fatalf("catapult: %v", err)
	}
	c.Load(p)
	if err := c.SetPull(pull); err != nil {
		t.Fatalf("set pull: %v", err)
	}
	return c
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		param string
		fn    func() error
	}{
		{"zero mass", "mass", func() error { _, err := NewProjectile(0, ""); return err }},
		{"negative mass", "mass", func() error { _, err := NewProjectile(-1, ""); return err }},
		{"nan mass", "mass", func() error { _, err := NewProjectile(math.NaN(), ""); return err }},
		{"zero k_band", "k_band", func() error { _, err := NewBandSystem(0, 4); return err }},
		{"zero bands", "n_bands", func() error { _, err := NewBandSystem(200, 0); return err }},
		{"zero arm", "arm_length", func() error { _, err := NewArm(0); return err }},
		{"zero efficiency", "efficiency", func() error { _, err := New(DefaultBandSystem(), nil, 0); return err }},
		{"efficiency above one", "efficiency", func() error { _, err := New(DefaultBandSystem(), nil, 1.5); return err }},
		{"uninitialized bands", "k_band", func() error { _, err := New(BandSystem{}, nil, 0.5); return err }},
		{"negative pull", "pull", func() error {
			c, _ := New(DefaultBandSystem(), nil, 0.5)
			return c.SetPull(-0.01)
		}},
		{"trajectory samples", "samples", func() error {
			c := newLoaded(t, 0.005, 0.03)
			_, err := c.Trajectory(45, 1)
			return err
		}},
	}

	for _, tt := range tests {
		err := tt.fn()
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
			continue
		}
		var pe *ParamError
		if !errors.As(err, &pe) || pe.Param != tt.param {
			t.Errorf("%s: expected param %q, got %v", tt.name, tt.param, err)
		}
	}
}

func TestDefaults(t *testing.T) {
	p, err := NewProjectile(0.01, "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != DefaultProjectileName {
		t.Errorf("expected default name, got %q", p.Name())
	}

	c, err := New(DefaultBandSystem(), nil, 1.0)
	if err != nil {
		t.Fatalf("efficiency 1.0 should be accepted: %v", err)
	}
	if c.Arm().Length() != DefaultArmLength {
		t.Errorf("expected default arm %f, got %f", DefaultArmLength, c.Arm().Length())
	}
	if c.Pull() != 0 {
		t.Errorf("expected zero pull, got %f", c.Pull())
	}
	if _, ok := c.Projectile(); ok {
		t.Error("expected no projectile")
	}
}

func TestDefaultArmNotShared(t *testing.T) {
	for i := 0; i < 2; i++ {
		c, _ := New(DefaultBandSystem(), nil, 0.5)
		if c.Arm().Length() != DefaultArmLength {
			t.Errorf("catapult %d: expected default arm, got %f", i, c.Arm().Length())
		}
	}

	arm, _ := NewArm(0.18)
	c, _ := New(DefaultBandSystem(), &arm, 0.5)
	if c.Arm().Length() != 0.18 {
		t.Errorf("expected arm 0.18, got %f", c.Arm().Length())
	}
}

func TestKTotal(t *testing.T) {
	tests := []struct {
		k float64
		n int
	}{
		{200, 4},
		{0.5, 1},
		{123.456, 7},
	}
	for _, tt := range tests {
		b, err := NewBandSystem(tt.k, tt.n)
		if err != nil {
			t.Fatal(err)
		}
		if b.KTotal() != tt.k*float64(tt.n) {
			t.Errorf("k=%f n=%d: got %f", tt.k, tt.n, b.KTotal())
		}
	}
}

func TestStoredEnergy(t *testing.T) {
	c, _ := New(DefaultBandSystem(), nil, 0.35)
	if c.StoredEnergy() != 0 {
		t.Errorf("expected zero energy at rest, got %f", c.StoredEnergy())
	}

	for _, x := range []float64{0.01, 0.03, 0.25} {
		if err := c.SetPull(x); err != nil {
			t.Fatal(err)
		}
		want := 0.5 * 800 * x * x
		if c.StoredEnergy() != want {
			t.Errorf("pull %f: expected %f, got %f", x, want, c.StoredEnergy())
		}
	}
}

func TestNoProjectile(t *testing.T) {
	c, _ := New(DefaultBandSystem(), nil, 0.35)
	_ = c.SetPull(0.03)

	if _, err := c.LaunchVelocity(); !errors.Is(err, ErrNoProjectile) {
		t.Errorf("velocity: expected ErrNoProjectile, got %v", err)
	}
	if _, err := c.RangeAtAngle(45); !errors.Is(err, ErrNoProjectile) {
		t.Errorf("range: expected ErrNoProjectile, got %v", err)
	}
	if _, err := c.SimulateLaunch(45); !errors.Is(err, ErrNoProjectile) {
		t.Errorf("launch: expected ErrNoProjectile, got %v", err)
	}
	if _, err := c.Trajectory(45, 10); !errors.Is(err, ErrNoProjectile) {
		t.Errorf("trajectory: expected ErrNoProjectile, got %v", err)
	}
	if errors.Is(ErrNoProjectile, ErrValidation) {
		t.Error("state and validation errors must be distinct")
	}
}

func TestZeroPullVelocity(t *testing.T) {
	c := newLoaded(t, 0.005, 0)
	v, err := c.LaunchVelocity()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Errorf("expected exactly zero velocity, got %g", v)
	}
}

func TestVelocityFormula(t *testing.T) {
	for _, tt := range []struct{ mass, pull float64 }{
		{0.005, 0.03},
		{0.1, 0.2},
		{2.0, 0.001},
	} {
		c := newLoaded(t, tt.mass, tt.pull)
		v, err := c.LaunchVelocity()
		if err != nil {
			t.Fatal(err)
		}
		want := math.Sqrt(2 * 0.35 * 0.5 * 800 * tt.pull * tt.pull / tt.mass)
		if math.Abs(v-want) > tol {
			t.Errorf("mass %f pull %f: expected %f, got %f", tt.mass, tt.pull, want, v)
		}
	}
}

func TestRangeSymmetry(t *testing.T) {
	c := newLoaded(t, 0.005, 0.03)
	best, _ := c.RangeAtAngle(45)

	for theta := 0.0; theta <= 90; theta += 7.5 {
		r1, _ := c.RangeAtAngle(theta)
		r2, _ := c.RangeAtAngle(90 - theta)
		if math.Abs(r1-r2) > tol {
			t.Errorf("theta %f: %f != %f", theta, r1, r2)
		}
		if r1 > best+tol {
			t.Errorf("theta %f beats 45 degrees: %f > %f", theta, r1, best)
		}
	}

	for _, angle := range []float64{0, 90} {
		r, _ := c.RangeAtAngle(angle)
		if math.Abs(r) > tol {
			t.Errorf("angle %f: expected zero range, got %g", angle, r)
		}
	}

	r, err := c.RangeAtAngle(120)
	if err != nil {
		t.Fatal(err)
	}
	if r >= 0 {
		t.Errorf("expected negative range past 90 degrees, got %f", r)
	}
}

func TestReferenceLaunch(t *testing.T) {
	p, _ := NewProjectile(0.005, "5g pompom")
	bands, _ := NewBandSystem(200, 4)
	arm, _ := NewArm(0.18)
	c, err := New(bands, &arm, 0.35)
	if err != nil {
		t.Fatal(err)
	}
	c.Load(p)
	_ = c.SetPull(0.03)

	r, err := c.SimulateLaunch(45)
	if err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"k_total", r.KTotal, 800, 0},
		{"stored", r.StoredJ, 0.36, 1e-12},
		{"useful", r.UsefulJ, 0.126, 1e-12},
		{"velocity", r.VelocityMS, 7.0993, 1e-4},
		{"range", r.RangeM, 5.1376, 1e-4},
		{"flight time", r.FlightTimeS, 2 * 7.09929573971954 * math.Sin(math.Pi/4) / Gravity, 1e-6},
		{"apex", r.ApexHeightM, r.RangeM / 4, 1e-9},
	}
	for _, ch := range checks {
		if math.Abs(ch.got-ch.want) > ch.tol {
			t.Errorf("%s: expected %f, got %f", ch.name, ch.want, ch.got)
		}
	}

	if r.Projectile != "5g pompom" || r.MassKg != 0.005 || r.PullM != 0.03 || r.AngleDeg != 45 {
		t.Errorf("unexpected report header: %+v", r)
	}
}

func TestTrajectory(t *testing.T) {
	c := newLoaded(t, 0.005, 0.03)
	pts, err := c.Trajectory(45, 21)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 21 {
		t.Fatalf("expected 21 points, got %d", len(pts))
	}

	rng, _ := c.RangeAtAngle(45)
	last := pts[len(pts)-1]
	if math.Abs(last.X-rng) > 1e-9 {
		t.Errorf("expected landing at %f, got %f", rng, last.X)
	}
	if last.Y != 0 || pts[0].X != 0 || pts[0].Y != 0 {
		t.Errorf("unexpected endpoints: %+v %+v", pts[0], last)
	}

	apex, _ := c.ApexHeight(45)
	mid := pts[10]
	if math.Abs(mid.Y-apex) > 1e-9 {
		t.Errorf("expected apex %f at midpoint, got %f", apex, mid.Y)
	}

	down, err := c.Trajectory(-30, 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range down {
		if p.X != 0 || p.Y != 0 {
			t.Errorf("expected origin for downward launch, got %+v", p)
		}
	}
}
