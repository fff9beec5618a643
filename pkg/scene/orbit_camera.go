package scene

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
)

// Orbit camera reference values, in meters
const (
	defaultOrbitRadius = 6.34194e10
	minOrbitRadius     = 1e10
	maxOrbitRadius     = 1e12
	defaultFovDegrees  = 60.0

	// Keep the elevation off the poles, where the view basis degenerates
	elevationEpsilon = 0.01
)

// Preset is a named orbit camera position
type Preset int

const (
	PresetEquatorial Preset = iota
	PresetPolar
	PresetCloseUp
	presetCount
)

// String returns the preset's display name
func (p Preset) String() string {
	switch p {
	case PresetEquatorial:
		return "equatorial"
	case PresetPolar:
		return "polar"
	case PresetCloseUp:
		return "close-up"
	default:
		return "unknown"
	}
}

// OrbitCamera orbits a target point on a sphere parameterized by azimuth,
// elevation and radius. It owns the CameraPose the renderer reads once per
// frame; the renderer never mutates it.
type OrbitCamera struct {
	Target    core.Vec3
	Radius    float64
	Azimuth   float64 // Around the Y axis, radians
	Elevation float64 // From the +Y pole, radians
	Moving    bool
}

// NewOrbitCamera creates a camera orbiting the target at the reference
// equatorial position
func NewOrbitCamera(target core.Vec3) *OrbitCamera {
	c := &OrbitCamera{Target: target}
	c.ApplyPreset(PresetEquatorial)
	return c
}

// ApplyPreset jumps the camera to one of the reference viewpoints
func (c *OrbitCamera) ApplyPreset(p Preset) {
	switch p {
	case PresetPolar:
		c.Radius = 8.0e10
		c.Azimuth = 0
		c.Elevation = 0.3
	case PresetCloseUp:
		c.Radius = 3.0e10
		c.Azimuth = math.Pi / 4
		c.Elevation = math.Pi / 3
	default:
		c.Radius = defaultOrbitRadius
		c.Azimuth = 0
		c.Elevation = math.Pi / 2
	}
}

// Reset returns the camera to the equatorial reference position
func (c *OrbitCamera) Reset() {
	c.ApplyPreset(PresetEquatorial)
}

// Orbit rotates the camera by the given azimuth/elevation deltas, clamping
// the elevation away from the poles
func (c *OrbitCamera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth += dAzimuth
	c.Elevation = clampFloat(c.Elevation+dElevation, elevationEpsilon, math.Pi-elevationEpsilon)
}

// Zoom moves the camera along its orbit radius, clamped to the session's
// working range
func (c *OrbitCamera) Zoom(delta float64) {
	c.Radius = clampFloat(c.Radius+delta, minOrbitRadius, maxOrbitRadius)
}

// Position returns the camera's world position on the orbit sphere
func (c *OrbitCamera) Position() core.Vec3 {
	elevation := clampFloat(c.Elevation, elevationEpsilon, math.Pi-elevationEpsilon)
	sinE, cosE := math.Sincos(elevation)
	sinA, cosA := math.Sincos(c.Azimuth)

	return c.Target.Add(core.NewVec3(
		c.Radius*sinE*cosA,
		c.Radius*cosE,
		c.Radius*sinE*sinA,
	))
}

// Pose builds the camera pose for one frame at the given aspect ratio
func (c *OrbitCamera) Pose(width, height int) renderer.CameraPose {
	aspect := float64(width) / float64(height)
	pose := renderer.LookAtPose(c.Position(), c.Target, defaultFovDegrees, aspect)
	pose.Moving = c.Moving
	return pose
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
