package physics

import "math"

// Status is the terminal classification of a traced ray. Active is the only
// non-terminal value; every ray reaches exactly one of the others within the
// step cap.
type Status int

const (
	StatusActive Status = iota
	StatusEscaped
	StatusCaptured
	StatusDiskHit
	StatusStepLimit // Step cap reached; treated as escaped by callers
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusEscaped:
		return "escaped"
	case StatusCaptured:
		return "captured"
	case StatusDiskHit:
		return "disk-hit"
	case StatusStepLimit:
		return "step-limit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends integration
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Classifier decides, once per integration step, whether a ray continues or
// terminates. It reads the shared session parameters without locking; they
// are immutable for the duration of a frame.
type Classifier struct {
	blackHole    *BlackHole
	disk         *AccretionDisk
	escapeRadius float64
}

// NewClassifier creates a classifier for the given session parameters
func NewClassifier(bh *BlackHole, disk *AccretionDisk, escapeRadius float64) *Classifier {
	return &Classifier{blackHole: bh, disk: disk, escapeRadius: escapeRadius}
}

// Classify inspects the step from prev to cur and returns the ray's status.
// The disk check runs before the capture and escape thresholds: a ray can sit
// inside the disk band while brushing the horizon, and the disk crossing is
// the physical occlusion event closer to the camera along the path.
func (c *Classifier) Classify(prev, cur *RayState) Status {
	if c.hitsDisk(prev, cur) {
		return StatusDiskHit
	}
	if cur.R <= c.blackHole.SchwarzschildRadius {
		return StatusCaptured
	}
	if cur.R >= c.escapeRadius {
		return StatusEscaped
	}
	return StatusActive
}

// hitsDisk reports whether the step crossed the luminous band of the disk,
// either by passing through the equatorial plane or by entering the
// thickness slab from outside. Merely sitting inside the slab is not a hit:
// the equatorial camera orbit starts on the plane inside the band, and rays
// leaving the plane must not terminate on the disk they were launched from.
func (c *Classifier) hitsDisk(prev, cur *RayState) bool {
	half := c.disk.Thickness / 2
	crossedPlane := planeCrossed(prev, cur)
	enteredSlab := math.Abs(prev.Y) > half && math.Abs(cur.Y) <= half

	if !crossedPlane && !enteredSlab {
		return false
	}
	return c.disk.Contains(diskRadius(prev, cur))
}

// diskRadius returns the equatorial radius where the step meets the disk
// plane, interpolating between the endpoints when the plane was crossed
func diskRadius(prev, cur *RayState) float64 {
	hit := DiskIntersection(prev, cur)
	return hit.EquatorialRadius()
}

// DiskIntersection returns the ray state at the point where the step meets
// the disk: the interpolated plane crossing when the equatorial plane was
// pierced, otherwise the current state inside the thickness slab
func DiskIntersection(prev, cur *RayState) RayState {
	if planeCrossed(prev, cur) {
		return planeCrossing(prev, cur)
	}
	return *cur
}

// planeCrossed reports whether the step pierced the equatorial plane,
// counting a step that lands exactly on the plane from off it
func planeCrossed(prev, cur *RayState) bool {
	return prev.Y*cur.Y < 0 || (cur.Y == 0 && prev.Y != 0)
}

// planeCrossing linearly interpolates the ray state to the point where the
// step pierced the equatorial plane. The velocities are taken from the
// current state; over one step they change negligibly.
func planeCrossing(prev, cur *RayState) RayState {
	t := prev.Y / (prev.Y - cur.Y)

	hit := *cur
	hit.X = prev.X + (cur.X-prev.X)*t
	hit.Y = 0
	hit.Z = prev.Z + (cur.Z-prev.Z)*t
	hit.R = prev.R + (cur.R-prev.R)*t
	hit.Theta = prev.Theta + (cur.Theta-prev.Theta)*t
	hit.Phi = prev.Phi + (cur.Phi-prev.Phi)*t
	return hit
}
