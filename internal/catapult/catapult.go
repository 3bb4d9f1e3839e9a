package catapult

import "math"

const (
	// Gravity is the standard gravitational acceleration in m/s^2.
	Gravity = 9.81

	DefaultEfficiency = 0.35
)

// Catapult converts elastic band energy into projectile velocity.
// It is not safe for concurrent use.
type Catapult struct {
	bands      BandSystem
	arm        CatapultArm
	efficiency float64
	projectile *Projectile
	pull       float64
}

// New assembles a catapult. A nil arm gets a freshly built default arm.
// Efficiency is the fraction of stored energy that reaches the projectile
// and must lie in (0, 1].
func New(bands BandSystem, arm *CatapultArm, efficiency float64) (*Catapult, error) {
	if bands.nBands < 1 || !(bands.kBand > 0) {
		return nil, invalid("k_band", bands.kBand, "band system not initialized")
	}
	if !(efficiency > 0 && efficiency <= 1) {
		return nil, invalid("efficiency", efficiency, "must be in (0, 1]")
	}

	a := DefaultArm()
	if arm != nil {
		a = *arm
	}

	return &Catapult{
		bands:      bands,
		arm:        a,
		efficiency: efficiency,
	}, nil
}

// Load replaces the loaded projectile.
func (c *Catapult) Load(p Projectile) {
	c.projectile = &p
}

// SetPull sets the band stretch in meters.
func (c *Catapult) SetPull(distance float64) error {
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return invalid("pull", distance, "must be >= 0")
	}
	c.pull = distance
	return nil
}

func (c *Catapult) Projectile() (Projectile, bool) {
	if c.projectile == nil {
		return Projectile{}, false
	}
	return *c.projectile, true
}

func (c *Catapult) Bands() BandSystem   { return c.bands }
func (c *Catapult) Arm() CatapultArm    { return c.arm }
func (c *Catapult) Efficiency() float64 { return c.efficiency }
func (c *Catapult) Pull() float64       { return c.pull }

// StoredEnergy returns 0.5 * K * x^2 in joules.
func (c *Catapult) StoredEnergy() float64 {
	k := c.bands.KTotal()
	x := c.pull
	return 0.5 * k * x * x
}

// UsefulEnergy is the share of stored energy that becomes kinetic energy.
func (c *Catapult) UsefulEnergy() float64 {
	return c.efficiency * c.StoredEnergy()
}

// LaunchVelocity returns sqrt(2 * E_useful / m) in m/s.
func (c *Catapult) LaunchVelocity() (float64, error) {
	if c.projectile == nil {
		return 0, ErrNoProjectile
	}
	return velocity(c.efficiency*c.StoredEnergy(), c.projectile.mass), nil
}

func velocity(useful, mass float64) float64 {
	if useful <= 0 {
		return 0
	}
	return math.Sqrt(2.0 * useful / mass)
}

// RangeAtAngle returns v^2 * sin(2*theta) / g. Angles are not clamped, so
// anything outside [0, 90] degrees can produce a negative range.
func (c *Catapult) RangeAtAngle(angleDeg float64) (float64, error) {
	v, err := c.LaunchVelocity()
	if err != nil {
		return 0, err
	}
	return rangeFor(v, angleDeg), nil
}

func rangeFor(v, angleDeg float64) float64 {
	theta := radians(angleDeg)
	return v * v * math.Sin(2*theta) / Gravity
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Report is the full result of a single launch.
type Report struct {
	Projectile  string  `json:"projectile" yaml:"projectile"`
	MassKg      float64 `json:"mass_kg" yaml:"mass_kg"`
	PullM       float64 `json:"pull_m" yaml:"pull_m"`
	KTotal      float64 `json:"k_total_n_per_m" yaml:"k_total_n_per_m"`
	StoredJ     float64 `json:"stored_energy_j" yaml:"stored_energy_j"`
	UsefulJ     float64 `json:"useful_energy_j" yaml:"useful_energy_j"`
	VelocityMS  float64 `json:"velocity_m_s" yaml:"velocity_m_s"`
	AngleDeg    float64 `json:"angle_deg" yaml:"angle_deg"`
	RangeM      float64 `json:"range_m" yaml:"range_m"`
	FlightTimeS float64 `json:"flight_time_s" yaml:"flight_time_s"`
	ApexHeightM float64 `json:"apex_height_m" yaml:"apex_height_m"`
}

// SimulateLaunch computes every quantity of one launch from the current
// state. Stored energy is evaluated once and shared by all derived values.
func (c *Catapult) SimulateLaunch(angleDeg float64) (Report, error) {
	if c.projectile == nil {
		return Report{}, ErrNoProjectile
	}

	stored := c.StoredEnergy()
	useful := c.efficiency * stored
	v := velocity(useful, c.projectile.mass)

	return Report{
		Projectile:  c.projectile.name,
		MassKg:      c.projectile.mass,
		PullM:       c.pull,
		KTotal:      c.bands.KTotal(),
		StoredJ:     stored,
		UsefulJ:     useful,
		VelocityMS:  v,
		AngleDeg:    angleDeg,
		RangeM:      rangeFor(v, angleDeg),
		FlightTimeS: flightTime(v, angleDeg),
		ApexHeightM: apexHeight(v, angleDeg),
	}, nil
}
