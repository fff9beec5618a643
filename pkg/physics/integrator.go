package physics

// Reference integration constants, in the length units of the Schwarzschild
// radius (meters). The step cap is the backpressure mechanism that bounds
// per-ray work near the photon sphere, where orbits can wind indefinitely.
const (
	DefaultStepSize     = 1e7
	DefaultEscapeRadius = 1e30
	DefaultMaxSteps     = 100000
)

// Integrator advances ray states step-by-step through the curved spacetime
// of a black hole until the classifier reports a terminal condition.
//
// The fixed base step trades a small conservation drift for speed; the step
// shrinks close to the horizon where curvature is strongest and grows in the
// weak-field region so escaping rays reach the escape radius within the cap.
type Integrator struct {
	blackHole *BlackHole
	StepSize  float64 // Base affine-parameter step Δλ
	MaxSteps  int     // Hard cap on steps per ray
}

// NewIntegrator creates an integrator with the reference step size and cap
func NewIntegrator(bh *BlackHole) *Integrator {
	return &Integrator{
		blackHole: bh,
		StepSize:  DefaultStepSize,
		MaxSteps:  DefaultMaxSteps,
	}
}

// TraceResult is the terminal outcome of one ray: the final status, the ray
// state at termination, and the number of steps consumed. For disk hits the
// state is interpolated to the plane-crossing point so shading sees the
// actual intersection.
type TraceResult struct {
	Status Status
	State  RayState
	Steps  int
}

// Step advances a single ray state by one integration step. Exposed for
// tests and diagnostic tools; rendering uses Trace.
func (g *Integrator) Step(s *RayState) {
	step(g.blackHole, s, g.stepSizeAt(s.R))
}

// Trace integrates the ray until the classifier terminates it or the step
// cap is reached. Integration never errors: numerical instability (non-finite
// state) classifies the ray as escaped, and the unconditional cap guarantees
// every ray reaches exactly one terminal status.
func (g *Integrator) Trace(s RayState, classifier *Classifier) TraceResult {
	for steps := 1; steps <= g.MaxSteps; steps++ {
		prev := s
		step(g.blackHole, &s, g.stepSizeAt(s.R))

		if !s.IsFinite() {
			// The step blew up; report the last well-defined state.
			return TraceResult{Status: StatusEscaped, State: prev, Steps: steps}
		}

		switch status := classifier.Classify(&prev, &s); status {
		case StatusDiskHit:
			return TraceResult{Status: status, State: DiskIntersection(&prev, &s), Steps: steps}
		case StatusCaptured, StatusEscaped:
			return TraceResult{Status: status, State: s, Steps: steps}
		}
	}
	return TraceResult{Status: StatusStepLimit, State: s, Steps: g.MaxSteps}
}

// stepSizeAt adapts the base step to the local curvature: quarter steps
// inside 3rs where the field is strongest, quadratic growth beyond 10rs
// where spacetime is effectively flat. Quadratic growth is what lets an
// escaping ray cover the many decades out to the escape radius inside the
// step cap.
func (g *Integrator) stepSizeAt(r float64) float64 {
	rs := g.blackHole.SchwarzschildRadius
	switch {
	case r < 3*rs:
		return g.StepSize * 0.25
	case r > 10*rs:
		scale := r / (10 * rs)
		return g.StepSize * scale * scale
	default:
		return g.StepSize
	}
}
