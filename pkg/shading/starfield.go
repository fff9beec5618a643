package shading

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// Starfield shades escaped rays with a deterministic procedural sky: a dim
// background gradient with pointlike stars hashed from the ray direction.
// Pure function of direction, so lensed star positions stay stable from
// frame to frame.
type Starfield struct {
	Density float64 // Fraction of sky cells containing a star
	Seed    uint64
}

// NewStarfield creates a starfield with a sparse default density
func NewStarfield() *Starfield {
	return &Starfield{Density: 0.004, Seed: 0x9e3779b97f4a7c15}
}

// Angular resolution of the star grid. Finer grids give smaller stars.
const (
	starCellsTheta = 1024
	starCellsPhi   = 2048
)

// Shade returns the background radiance for a ray leaving in the given
// world-space direction
func (sf *Starfield) Shade(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()

	// Faint blue-grey haze, slightly brighter toward the galactic plane
	// (the equatorial plane of the scene).
	haze := math.Exp(-d.Y * d.Y * 18)
	background := core.NewVec3(0.004, 0.005, 0.010).Add(
		core.NewVec3(0.012, 0.010, 0.009).Multiply(haze))

	theta := math.Acos(clampUnit(d.Y))
	phi := math.Atan2(d.Z, d.X) + math.Pi

	cellT := uint64(theta / math.Pi * starCellsTheta)
	cellP := uint64(phi / (2 * math.Pi) * starCellsPhi)
	h := splitmix64(sf.Seed ^ (cellT<<32 | cellP))

	if float64(h&0xffffff)/float64(0xffffff) >= sf.Density {
		return background
	}

	// Star brightness and temperature from independent hash bits.
	brightness := 0.3 + 0.7*float64((h>>24)&0xffff)/float64(0xffff)
	kelvin := 3000 + 12000*float64((h>>40)&0xffff)/float64(0xffff)

	return background.Add(BlackbodyRGB(kelvin).Multiply(brightness))
}

// splitmix64 is a small stateless hash with good bit dispersion
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(-1, v))
}
