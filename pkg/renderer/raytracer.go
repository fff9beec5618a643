package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/physics"
	"github.com/df07/go-blackhole-raytracer/pkg/shading"
)

// QualityConfig controls the cost of the per-ray integration. Interactive
// quality is selected automatically while the camera is moving.
type QualityConfig struct {
	StepScale float64 // Multiplier on the reference step size
	MaxSteps  int     // Hard cap on integration steps per ray
}

// FullQuality returns the reference integration settings
func FullQuality() QualityConfig {
	return QualityConfig{StepScale: 1, MaxSteps: physics.DefaultMaxSteps}
}

// InteractiveQuality returns coarser settings for camera motion: larger
// steps and a quarter of the step budget
func InteractiveQuality() QualityConfig {
	return QualityConfig{StepScale: 4, MaxSteps: physics.DefaultMaxSteps / 4}
}

// Raytracer computes the color of single pixels by integrating light paths
// backward from the camera through the black hole's curved spacetime. It
// holds only read-only session state and may be shared by all workers.
type Raytracer struct {
	blackHole  *physics.BlackHole
	disk       *physics.AccretionDisk
	classifier *physics.Classifier
	diskShader *shading.DiskShader
	starfield  *shading.Starfield

	full        *physics.Integrator
	interactive *physics.Integrator
}

// NewRaytracer creates a raytracer for the given session parameters
func NewRaytracer(bh *physics.BlackHole, disk *physics.AccretionDisk) *Raytracer {
	rt := &Raytracer{
		blackHole:  bh,
		disk:       disk,
		classifier: physics.NewClassifier(bh, disk, physics.DefaultEscapeRadius),
		diskShader: shading.NewDiskShader(bh, disk),
		starfield:  shading.NewStarfield(),
	}
	rt.SetQuality(FullQuality(), InteractiveQuality())
	return rt
}

// SetQuality replaces the integrator settings used for static and moving
// cameras. Must not be called while a frame is in flight.
func (rt *Raytracer) SetQuality(full, interactive QualityConfig) {
	rt.full = rt.newIntegrator(full)
	rt.interactive = rt.newIntegrator(interactive)
}

// SetDoppler toggles the Doppler beaming term of the disk shader
func (rt *Raytracer) SetDoppler(enabled bool) {
	rt.diskShader.Doppler = enabled
}

// SetTurbulence toggles the animated disk structure
func (rt *Raytracer) SetTurbulence(enabled bool) {
	rt.diskShader.Turbulence = enabled
}

func (rt *Raytracer) newIntegrator(q QualityConfig) *physics.Integrator {
	integrator := physics.NewIntegrator(rt.blackHole)
	integrator.StepSize = physics.DefaultStepSize * q.StepScale
	integrator.MaxSteps = q.MaxSteps
	return integrator
}

// TracePixel traces the light path for one pixel and resolves its color.
// Every ray reaches exactly one terminal state: captured rays are black,
// disk hits are shaded from the local physics, and escaped rays (including
// those cut off by the step cap) show the background starfield.
func (rt *Raytracer) TracePixel(pose *CameraPose, px, py, width, height int, simTime float64) (core.Vec3, physics.TraceResult) {
	ray := pose.GenerateRay(px, py, width, height)
	state := physics.NewRayState(ray.Origin, ray.Direction, rt.blackHole)

	integrator := rt.full
	if pose.Moving {
		integrator = rt.interactive
	}

	result := integrator.Trace(state, rt.classifier)

	switch result.Status {
	case physics.StatusCaptured:
		return core.Vec3{}, result
	case physics.StatusDiskHit:
		if radiance, ok := rt.diskShader.Shade(&result.State, simTime); ok {
			return radiance, result
		}
		// Out-of-band hit: treat the disk as transparent and fall through
		// to the background along the ray's final direction.
		return rt.starfield.Shade(result.State.Direction()), result
	default:
		return rt.starfield.Shade(result.State.Direction()), result
	}
}

// ResolveColor converts linear radiance to a display color: Reinhard tone
// mapping for the disk's high dynamic range, then gamma correction
func ResolveColor(radiance core.Vec3) color.RGBA {
	mapped := core.NewVec3(
		radiance.X/(1+radiance.X),
		radiance.Y/(1+radiance.Y),
		radiance.Z/(1+radiance.Z),
	)
	mapped = mapped.GammaCorrect(2.0).Clamp(0, 1)

	return color.RGBA{
		R: uint8(math.Round(255 * mapped.X)),
		G: uint8(math.Round(255 * mapped.Y)),
		B: uint8(math.Round(255 * mapped.Z)),
		A: 255,
	}
}
