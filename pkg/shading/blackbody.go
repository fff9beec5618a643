package shading

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// BlackbodyRGB converts a temperature in Kelvin to a linear RGB color using
// the Tanner Helland polynomial fit, accurate to a few percent over
// 1000K..40000K. Temperatures outside that range are clamped.
func BlackbodyRGB(kelvin float64) core.Vec3 {
	t := math.Min(40000, math.Max(1000, kelvin)) / 100

	var r, g, b float64

	if t <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
	}

	if t <= 66 {
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	if t >= 66 {
		b = 255
	} else if t <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	// Normalize through a proper color type so out-of-gamut fit values are
	// clamped consistently.
	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
	return core.NewVec3(c.R, c.G, c.B)
}
