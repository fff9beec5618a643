package physics

import (
	"math"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func testClassifier(bh *BlackHole) *Classifier {
	rs := bh.SchwarzschildRadius
	disk := NewAccretionDisk(3*rs, 20*rs, 0.1*rs, 50000)
	return NewClassifier(bh, disk, DefaultEscapeRadius)
}

func TestTrace_RadialCapture(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)

	// Aimed straight at the hole from the polar axis side, clear of the disk
	s := NewRayState(core.NewVec3(0, 10*rs, 0), core.NewVec3(0, -1, 0), bh)
	result := g.Trace(s, testClassifier(bh))

	if result.Status != StatusCaptured {
		t.Fatalf("expected captured, got %v after %d steps", result.Status, result.Steps)
	}
	if result.State.R > rs*1.01 {
		t.Errorf("captured state should sit at the horizon, got r=%g (rs=%g)", result.State.R, rs)
	}
}

func TestTrace_OutwardEscape(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)

	s := NewRayState(core.NewVec3(0, 20*rs, 0), core.NewVec3(0, 1, 0), bh)
	result := g.Trace(s, testClassifier(bh))

	if result.Status != StatusEscaped {
		t.Fatalf("expected escaped, got %v after %d steps", result.Status, result.Steps)
	}
	if result.Steps >= g.MaxSteps {
		t.Errorf("escape should complete well inside the step cap, used %d", result.Steps)
	}
	if result.State.R < DefaultEscapeRadius {
		t.Errorf("escaped state should be past the escape radius, got r=%g", result.State.R)
	}
}

func TestTrace_DiskHit(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)
	classifier := testClassifier(bh)

	// From above the plane, aimed straight down through the luminous band.
	// Lensing pulls the crossing inward but not out of the band.
	s := NewRayState(core.NewVec3(15*rs, 10*rs, 0), core.NewVec3(0, -1, 0), bh)
	result := g.Trace(s, classifier)

	if result.Status != StatusDiskHit {
		t.Fatalf("expected disk hit, got %v after %d steps", result.Status, result.Steps)
	}

	rho := result.State.EquatorialRadius()
	if rho < 3*rs || rho > 20*rs {
		t.Errorf("hit radius %g outside the disk band [%g, %g]", rho, 3*rs, 20*rs)
	}
	if math.Abs(result.State.Y) > 0.1*rs {
		t.Errorf("hit state should sit near the plane, got y=%g", result.State.Y)
	}
}

func TestTrace_EscapeFromDiskPlane(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)

	// The equatorial camera orbit sits essentially on the disk plane, inside
	// the luminous band. A ray leaving the plane from there must not
	// terminate on the disk it started in.
	origin := core.NewVec3(5*rs, 4e-6, 0)
	s := NewRayState(origin, core.NewVec3(0.1, 1, 0.2).Normalize(), bh)
	result := g.Trace(s, testClassifier(bh))

	if result.Status != StatusEscaped {
		t.Fatalf("expected escape away from the plane, got %v after %d steps",
			result.Status, result.Steps)
	}
}

func TestTrace_AlwaysTerminates(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)
	classifier := testClassifier(bh)

	// Rays near the photon sphere impact parameter wind many times; all of
	// them must still reach a terminal status
	directions := []core.Vec3{
		core.NewVec3(-1, 0, 0.173),
		core.NewVec3(-1, 0, 0.180),
		core.NewVec3(-1, 0.05, 0.177),
		core.NewVec3(-1, -0.02, 0.175),
	}

	for _, d := range directions {
		s := NewRayState(core.NewVec3(15*rs, 0.5*rs, 0), d.Normalize(), bh)
		result := g.Trace(s, classifier)

		if !result.Status.Terminal() {
			t.Errorf("direction %v: non-terminal status %v", d, result.Status)
		}
		if result.Steps > g.MaxSteps {
			t.Errorf("direction %v: step count %d exceeds cap %d", d, result.Steps, g.MaxSteps)
		}
	}
}

func TestIntegrator_StepSizeAdaptation(t *testing.T) {
	bh := testBlackHole()
	rs := bh.SchwarzschildRadius
	g := NewIntegrator(bh)

	if h := g.stepSizeAt(2 * rs); h != g.StepSize*0.25 {
		t.Errorf("expected quarter step near the hole, got %g", h)
	}
	if h := g.stepSizeAt(5 * rs); h != g.StepSize {
		t.Errorf("expected base step in the mid zone, got %g", h)
	}
	if h := g.stepSizeAt(20 * rs); math.Abs(h-4*g.StepSize) > 1e-6*g.StepSize {
		t.Errorf("expected quadratic growth at 20rs, got %g", h)
	}
	if h := g.stepSizeAt(100 * rs); math.Abs(h-100*g.StepSize) > 1e-4*g.StepSize {
		t.Errorf("expected quadratic growth at 100rs, got %g", h)
	}
}
