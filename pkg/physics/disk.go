package physics

import (
	"fmt"
	"math"
)

// AccretionDisk describes a geometrically thin luminous disk in the
// equatorial plane of the black hole. Immutable for a rendering session.
type AccretionDisk struct {
	InnerRadius float64 // Inner edge of the luminous band
	OuterRadius float64 // Outer edge of the luminous band
	Thickness   float64 // Full vertical extent of the disk
	Temperature float64 // Temperature at the inner edge, in Kelvin
}

// NewAccretionDisk creates a disk spanning the given radial band
func NewAccretionDisk(inner, outer, thickness, temperature float64) *AccretionDisk {
	return &AccretionDisk{
		InnerRadius: inner,
		OuterRadius: outer,
		Thickness:   thickness,
		Temperature: temperature,
	}
}

// Validate checks that the parameters describe a sensible disk
func (d *AccretionDisk) Validate() error {
	if d.InnerRadius <= 0 {
		return fmt.Errorf("disk inner radius must be positive, got %g", d.InnerRadius)
	}
	if d.InnerRadius >= d.OuterRadius {
		return fmt.Errorf("disk inner radius %g must be less than outer radius %g", d.InnerRadius, d.OuterRadius)
	}
	if d.Thickness <= 0 {
		return fmt.Errorf("disk thickness must be positive, got %g", d.Thickness)
	}
	if d.Temperature <= 0 {
		return fmt.Errorf("disk temperature must be positive, got %g", d.Temperature)
	}
	return nil
}

// Contains reports whether the equatorial radius rho lies in the
// luminous band
func (d *AccretionDisk) Contains(rho float64) bool {
	return rho >= d.InnerRadius && rho <= d.OuterRadius
}

// TemperatureAt returns the local disk temperature at equatorial radius rho.
// The profile falls off as rho^(-3/4), the standard thin-disk law, anchored
// at Temperature on the inner edge. Radii outside the band return 0.
func (d *AccretionDisk) TemperatureAt(rho float64) float64 {
	if !d.Contains(rho) {
		return 0
	}
	return d.Temperature * math.Pow(rho/d.InnerRadius, -0.75)
}
