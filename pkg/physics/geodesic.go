package physics

import (
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// poleEpsilon keeps the polar angle away from the coordinate singularities
// at theta=0 and theta=pi, mirroring the camera elevation clamp.
const poleEpsilon = 1e-9

// RayState holds the state of one light ray along its geodesic: the
// spherical coordinates relative to the black hole center, their derivatives
// with respect to the affine parameter, a Cartesian mirror of the position,
// and the two conserved quantities E and L fixed at creation.
//
// A RayState is owned by the computation for exactly one pixel and is never
// shared, which is what allows lock-free parallel tracing.
type RayState struct {
	X, Y, Z          float64 // Cartesian position relative to the hole
	R, Theta, Phi    float64 // Spherical position
	DR, DTheta, DPhi float64 // Coordinate velocities d/dλ
	E, L             float64 // Conserved energy and angular momentum
}

// NewRayState converts a world-space ray into its spherical geodesic state
// and evaluates the conserved quantities from the initial velocity under the
// null condition. Always produces a valid state.
func NewRayState(origin, direction core.Vec3, bh *BlackHole) RayState {
	p := origin.Subtract(bh.Position)
	d := direction.Normalize()

	r := p.Length()
	theta := math.Acos(clamp(p.Y/r, -1, 1))
	theta = clamp(theta, poleEpsilon, math.Pi-poleEpsilon)
	phi := math.Atan2(p.Z, p.X)

	sinTheta := math.Sin(theta)

	dr := p.Dot(d) / r
	dtheta := (p.Y*dr - d.Y*r) / (r * r * sinTheta)

	rho2 := p.X*p.X + p.Z*p.Z
	var dphi float64
	if rho2 > 0 {
		dphi = (p.X*d.Z - p.Z*d.X) / rho2
	}

	s := RayState{
		X: p.X, Y: p.Y, Z: p.Z,
		R: r, Theta: theta, Phi: phi,
		DR: dr, DTheta: dtheta, DPhi: dphi,
	}
	s.E = s.nullEnergy(bh)
	s.L = s.angularMomentum()
	return s
}

// Position returns the Cartesian position relative to the black hole center
func (s *RayState) Position() core.Vec3 {
	return core.NewVec3(s.X, s.Y, s.Z)
}

// Direction returns the unit Cartesian direction of propagation derived from
// the spherical velocities
func (s *RayState) Direction() core.Vec3 {
	sinTheta, cosTheta := math.Sincos(s.Theta)
	sinPhi, cosPhi := math.Sincos(s.Phi)

	vx := sinTheta*cosPhi*s.DR + s.R*cosTheta*cosPhi*s.DTheta - s.R*sinTheta*sinPhi*s.DPhi
	vy := cosTheta*s.DR - s.R*sinTheta*s.DTheta
	vz := sinTheta*sinPhi*s.DR + s.R*cosTheta*sinPhi*s.DTheta + s.R*sinTheta*cosPhi*s.DPhi

	return core.NewVec3(vx, vy, vz).Normalize()
}

// EquatorialRadius returns the projection of the position onto the disk plane
func (s *RayState) EquatorialRadius() float64 {
	return math.Sqrt(s.X*s.X + s.Z*s.Z)
}

// nullEnergy evaluates E = f·dt/dλ from the null condition using the current
// velocities. At creation this fixes E; recomputing it later measures the
// integration drift.
func (s *RayState) nullEnergy(bh *BlackHole) float64 {
	f := bh.metricFactor(s.R)
	sinTheta := math.Sin(s.Theta)
	angular := s.R * s.R * (s.DTheta*s.DTheta + sinTheta*sinTheta*s.DPhi*s.DPhi)
	return math.Sqrt(math.Max(0, s.DR*s.DR+f*angular))
}

// angularMomentum evaluates L = r²·sin²θ·dφ/dλ from the current state
func (s *RayState) angularMomentum() float64 {
	sinTheta := math.Sin(s.Theta)
	return s.R * s.R * sinTheta * sinTheta * s.DPhi
}

// ConservationDrift returns the relative drift of the conserved pair (E, L)
// since ray creation. Growth beyond a small tolerance indicates the step
// size is too large for the local curvature.
func (s *RayState) ConservationDrift(bh *BlackHole) (eDrift, lDrift float64) {
	eDrift = relativeDrift(s.nullEnergy(bh), s.E)
	lDrift = relativeDrift(s.angularMomentum(), s.L)
	return eDrift, lDrift
}

// IsFinite reports whether the position and velocities are all finite
func (s *RayState) IsFinite() bool {
	for _, v := range [...]float64{s.R, s.Theta, s.Phi, s.DR, s.DTheta, s.DPhi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// syncCartesian refreshes the Cartesian mirror from the spherical coordinates
func (s *RayState) syncCartesian() {
	sinTheta, cosTheta := math.Sincos(s.Theta)
	sinPhi, cosPhi := math.Sincos(s.Phi)
	s.X = s.R * sinTheta * cosPhi
	s.Y = s.R * cosTheta
	s.Z = s.R * sinTheta * sinPhi
}

// derivative holds d/dλ of the six integrated components
type derivative struct {
	dr, dtheta, dphi    float64
	ddr, ddtheta, ddphi float64
}

// acceleration evaluates the geodesic equations of motion for the
// Schwarzschild metric, using the conserved E to close the system via
// dt/dλ = E/f:
//
//	r″ = (rs/(2r²f))(ṙ² − E²) + (r − rs)(θ̇² + sin²θ·φ̇²)
//	θ″ = −2ṙθ̇/r + sinθ·cosθ·φ̇²
//	φ″ = −2ṙφ̇/r − 2cotθ·θ̇φ̇
func acceleration(bh *BlackHole, s *RayState) derivative {
	rs := bh.SchwarzschildRadius
	r := s.R
	f := bh.metricFactor(r)
	if f < 1e-12 {
		// At or inside the horizon; the ray is about to classify as
		// captured, so further curvature is irrelevant.
		return derivative{dr: s.DR, dtheta: s.DTheta, dphi: s.DPhi}
	}

	sinTheta, cosTheta := math.Sincos(s.Theta)

	angular := s.DTheta*s.DTheta + sinTheta*sinTheta*s.DPhi*s.DPhi
	ddr := rs/(2*r*r*f)*(s.DR*s.DR-s.E*s.E) + (r-rs)*angular

	ddtheta := -2*s.DR*s.DTheta/r + sinTheta*cosTheta*s.DPhi*s.DPhi

	ddphi := -2 * s.DR * s.DPhi / r
	if math.Abs(sinTheta) > poleEpsilon {
		ddphi -= 2 * (cosTheta / sinTheta) * s.DTheta * s.DPhi
	}

	return derivative{
		dr: s.DR, dtheta: s.DTheta, dphi: s.DPhi,
		ddr: ddr, ddtheta: ddtheta, ddphi: ddphi,
	}
}

// advance returns a copy of s moved along the derivative by dt, used for the
// intermediate RK4 evaluations
func advance(s *RayState, d derivative, dt float64) RayState {
	return RayState{
		R:      s.R + d.dr*dt,
		Theta:  s.Theta + d.dtheta*dt,
		Phi:    s.Phi + d.dphi*dt,
		DR:     s.DR + d.ddr*dt,
		DTheta: s.DTheta + d.ddtheta*dt,
		DPhi:   s.DPhi + d.ddphi*dt,
		E:      s.E,
		L:      s.L,
	}
}

// step advances the state by one 4th-order Runge-Kutta step of size h along
// the affine parameter, then refreshes the Cartesian mirror
func step(bh *BlackHole, s *RayState, h float64) {
	k1 := acceleration(bh, s)

	mid1 := advance(s, k1, h*0.5)
	k2 := acceleration(bh, &mid1)

	mid2 := advance(s, k2, h*0.5)
	k3 := acceleration(bh, &mid2)

	end := advance(s, k3, h)
	k4 := acceleration(bh, &end)

	sixth := h / 6.0
	s.R += sixth * (k1.dr + 2*k2.dr + 2*k3.dr + k4.dr)
	s.Theta += sixth * (k1.dtheta + 2*k2.dtheta + 2*k3.dtheta + k4.dtheta)
	s.Phi += sixth * (k1.dphi + 2*k2.dphi + 2*k3.dphi + k4.dphi)
	s.DR += sixth * (k1.ddr + 2*k2.ddr + 2*k3.ddr + k4.ddr)
	s.DTheta += sixth * (k1.ddtheta + 2*k2.ddtheta + 2*k3.ddtheta + k4.ddtheta)
	s.DPhi += sixth * (k1.ddphi + 2*k2.ddphi + 2*k3.ddphi + k4.ddphi)

	s.syncCartesian()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func relativeDrift(now, initial float64) float64 {
	scale := math.Max(math.Abs(initial), 1e-30)
	return math.Abs(now-initial) / scale
}
