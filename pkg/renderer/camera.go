package renderer

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// CameraPose is the camera state for one frame: position, an orthonormal
// basis, and the projection parameters. It is owned by the camera
// collaborator and read-only to the renderer; the Moving flag selects a
// cheaper quality level while the camera is being dragged.
type CameraPose struct {
	Position   core.Vec3
	Right      core.Vec3
	Up         core.Vec3
	Forward    core.Vec3
	TanHalfFov float64
	Aspect     float64
	Moving     bool
}

// LookAtPose builds a pose at the given position looking toward target, with
// the world Y axis as up
func LookAtPose(position, target core.Vec3, fovDegrees, aspect float64) CameraPose {
	forward := target.Subtract(position).Normalize()
	worldUp := core.NewVec3(0, 1, 0)
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward).Normalize()

	return CameraPose{
		Position:   position,
		Right:      right,
		Up:         up,
		Forward:    forward,
		TanHalfFov: math.Tan(fovDegrees * math.Pi / 180 / 2),
		Aspect:     aspect,
	}
}

// GenerateRay maps a pixel coordinate to a world-space ray through the pixel
// center. Pure function of its inputs; every pixel yields a valid ray.
func (p *CameraPose) GenerateRay(px, py, width, height int) core.Ray {
	// Normalized device coordinates in [-1, 1], y up.
	u := (2*(float64(px)+0.5)/float64(width) - 1) * p.TanHalfFov * p.Aspect
	v := (1 - 2*(float64(py)+0.5)/float64(height)) * p.TanHalfFov

	direction := p.Forward.
		Add(p.Right.Multiply(u)).
		Add(p.Up.Multiply(v)).
		Normalize()

	return core.NewRay(p.Position, direction)
}
