package renderer

import (
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/physics"
)

func testRaytracer() (*Raytracer, float64) {
	bh := physics.NewBlackHole(core.NewVec3(0, 0, 0), 8.54e36)
	rs := bh.SchwarzschildRadius
	disk := physics.NewAccretionDisk(3*rs, 20*rs, 0.1*rs, 50000)
	return NewRaytracer(bh, disk), rs
}

func TestTracePixel_Captured(t *testing.T) {
	rt, rs := testRaytracer()

	// View axis straight at the hole from the polar side: the central ray
	// has zero impact parameter and must fall in
	pose := LookAtPose(core.NewVec3(0, 30*rs, 0.001*rs), core.NewVec3(0, 0, 0), 60, 1.0)
	radiance, result := rt.TracePixel(&pose, 50, 50, 101, 101, 0)

	if result.Status != physics.StatusCaptured {
		t.Fatalf("expected captured, got %v", result.Status)
	}
	if radiance != (core.Vec3{}) {
		t.Errorf("captured rays must be black, got %v", radiance)
	}
}

func TestTracePixel_EscapedBackground(t *testing.T) {
	rt, rs := testRaytracer()

	// Aimed away from the hole: huge impact parameter, no deflection worth
	// the name, so the pixel shows the starfield
	pose := LookAtPose(core.NewVec3(100*rs, 30*rs, 0), core.NewVec3(200*rs, 60*rs, 0), 60, 1.0)
	radiance, result := rt.TracePixel(&pose, 50, 50, 101, 101, 0)

	if result.Status != physics.StatusEscaped {
		t.Fatalf("expected escaped, got %v", result.Status)
	}
	if radiance.Luminance() <= 0 {
		t.Error("escaped rays should show the background, got pure black")
	}
}

func TestTracePixel_DiskHit(t *testing.T) {
	rt, rs := testRaytracer()

	// Looking down onto a point of the disk inside the luminous band
	pose := LookAtPose(core.NewVec3(30*rs, 40*rs, 0), core.NewVec3(10*rs, 0, 0), 60, 1.0)
	radiance, result := rt.TracePixel(&pose, 50, 50, 101, 101, 0)

	if result.Status != physics.StatusDiskHit {
		t.Fatalf("expected disk hit, got %v", result.Status)
	}
	if radiance.Luminance() <= 0 {
		t.Error("disk hits should be luminous")
	}
}

func TestTracePixel_InteractiveQuality(t *testing.T) {
	rt, rs := testRaytracer()

	pose := LookAtPose(core.NewVec3(0, 30*rs, 0.001*rs), core.NewVec3(0, 0, 0), 60, 1.0)
	pose.Moving = true
	_, result := rt.TracePixel(&pose, 50, 50, 101, 101, 0)

	if result.Status != physics.StatusCaptured {
		t.Errorf("interactive quality should reach the same outcome, got %v", result.Status)
	}
	if result.Steps > InteractiveQuality().MaxSteps {
		t.Errorf("interactive trace exceeded its step budget: %d", result.Steps)
	}
}

func TestResolveColor(t *testing.T) {
	black := ResolveColor(core.Vec3{})
	if black.R != 0 || black.G != 0 || black.B != 0 || black.A != 255 {
		t.Errorf("zero radiance should resolve to opaque black, got %v", black)
	}

	bright := ResolveColor(core.NewVec3(100, 100, 100))
	if bright.R < 250 || bright.G < 250 || bright.B < 250 {
		t.Errorf("high radiance should saturate toward white, got %v", bright)
	}
	if bright.A != 255 {
		t.Errorf("alpha must always be opaque, got %d", bright.A)
	}

	dim := ResolveColor(core.NewVec3(0.01, 0.01, 0.01))
	if dim.R == 0 {
		t.Error("dim radiance should stay visible after tone mapping")
	}
	if dim.R >= bright.R {
		t.Error("tone mapping should preserve ordering")
	}
}
