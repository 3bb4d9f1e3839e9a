package catapult

import "math"

const (
	DefaultProjectileName = "soft projectile"
	DefaultKBand          = 200.0
	DefaultNBands         = 4
	DefaultArmLength      = 0.2
)

// Projectile is an immutable launch payload.
type Projectile struct {
	mass float64
	name string
}

// NewProjectile validates mass (kg). An empty name falls back to
// DefaultProjectileName.
func NewProjectile(mass float64, name string) (Projectile, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return Projectile{}, invalid("mass", mass, "must be positive")
	}
	if name == "" {
		name = DefaultProjectileName
	}
	return Projectile{mass: mass, name: name}, nil
}

func (p Projectile) Mass() float64 { return p.mass }
func (p Projectile) Name() string  { return p.name }

// BandSystem is a set of identical elastic bands acting in parallel.
type BandSystem struct {
	kBand  float64
	nBands int
}

func NewBandSystem(kBand float64, nBands int) (BandSystem, error) {
	if !(kBand > 0) || math.IsInf(kBand, 0) {
		return BandSystem{}, invalid("k_band", kBand, "must be positive")
	}
	if nBands < 1 {
		return BandSystem{}, invalid("n_bands", float64(nBands), "must be at least 1")
	}
	return BandSystem{kBand: kBand, nBands: nBands}, nil
}

func DefaultBandSystem() BandSystem {
	return BandSystem{kBand: DefaultKBand, nBands: DefaultNBands}
}

func (b BandSystem) KBand() float64 { return b.kBand }
func (b BandSystem) NBands() int    { return b.nBands }

// KTotal is the combined stiffness (N/m) of all bands.
func (b BandSystem) KTotal() float64 {
	return b.kBand * float64(b.nBands)
}

// CatapultArm is descriptive only; no formula reads its length.
type CatapultArm struct {
	length float64
}

func NewArm(length float64) (CatapultArm, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return CatapultArm{}, invalid("arm_length", length, "must be positive")
	}
	return CatapultArm{length: length}, nil
}

func DefaultArm() CatapultArm {
	return CatapultArm{length: DefaultArmLength}
}

func (a CatapultArm) Length() float64 { return a.length }
