package scene

import (
	"fmt"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/physics"
)

// Sagittarius A* session constants: the supermassive black hole at the
// galactic center, with a disk spanning 3..20 Schwarzschild radii.
const (
	SagittariusMass = 8.54e36 // kg

	diskInnerRadii  = 3.0
	diskOuterRadii  = 20.0
	diskThickness   = 0.1
	diskTemperature = 50000.0 // Kelvin at the inner edge
)

// Config is the immutable session configuration: the black hole, the
// accretion disk, and rendering toggles. It is validated once at session
// start; the rendering core assumes it is physically sensible and performs
// no per-frame validation.
type Config struct {
	BlackHole  *physics.BlackHole
	Disk       *physics.AccretionDisk
	Doppler    bool // Doppler beaming of the disk
	Turbulence bool // Time-animated disk structure
}

// NewSagittariusConfig creates the default session: Sagittarius A* centered
// at the origin with the reference disk
func NewSagittariusConfig() *Config {
	bh := physics.NewBlackHole(core.NewVec3(0, 0, 0), SagittariusMass)
	rs := bh.SchwarzschildRadius

	return &Config{
		BlackHole: bh,
		Disk: physics.NewAccretionDisk(
			diskInnerRadii*rs,
			diskOuterRadii*rs,
			diskThickness*rs,
			diskTemperature,
		),
		Doppler:    true,
		Turbulence: true,
	}
}

// Validate rejects configurations the rendering core cannot handle. Called
// once before any frame is rendered.
func (c *Config) Validate() error {
	if c.BlackHole == nil {
		return fmt.Errorf("config has no black hole")
	}
	if err := c.BlackHole.Validate(); err != nil {
		return fmt.Errorf("invalid black hole: %w", err)
	}
	if c.Disk == nil {
		return fmt.Errorf("config has no accretion disk")
	}
	if err := c.Disk.Validate(); err != nil {
		return fmt.Errorf("invalid accretion disk: %w", err)
	}
	if c.Disk.OuterRadius <= c.BlackHole.SchwarzschildRadius {
		return fmt.Errorf("disk outer radius %g lies inside the event horizon %g",
			c.Disk.OuterRadius, c.BlackHole.SchwarzschildRadius)
	}
	return nil
}
