package physics

import (
	"fmt"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// Physical constants in SI units. All lengths in the simulation are meters,
// with the speed of light normalized to 1 per unit of affine parameter.
const (
	GravitationalConstant = 6.67430e-11
	SpeedOfLight          = 2.99792458e8
)

// BlackHole describes a non-rotating (Schwarzschild) black hole.
// Immutable for a rendering session.
type BlackHole struct {
	Position            core.Vec3 // Center of the hole in world coordinates
	Mass                float64   // Mass in kg
	SchwarzschildRadius float64   // Event horizon radius, 2GM/c²
}

// NewBlackHole creates a black hole at the given position, deriving the
// Schwarzschild radius from the mass
func NewBlackHole(position core.Vec3, mass float64) *BlackHole {
	return &BlackHole{
		Position:            position,
		Mass:                mass,
		SchwarzschildRadius: 2 * GravitationalConstant * mass / (SpeedOfLight * SpeedOfLight),
	}
}

// Validate checks that the parameters are physically sensible
func (bh *BlackHole) Validate() error {
	if bh.Mass <= 0 {
		return fmt.Errorf("black hole mass must be positive, got %g", bh.Mass)
	}
	if bh.SchwarzschildRadius <= 0 {
		return fmt.Errorf("schwarzschild radius must be positive, got %g", bh.SchwarzschildRadius)
	}
	return nil
}

// metricFactor returns f(r) = 1 - rs/r, the g_tt factor of the
// Schwarzschild metric
func (bh *BlackHole) metricFactor(r float64) float64 {
	return 1 - bh.SchwarzschildRadius/r
}
