package scene

import (
	"math"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func TestOrbitCamera_Presets(t *testing.T) {
	camera := NewOrbitCamera(core.NewVec3(0, 0, 0))

	if camera.Radius != defaultOrbitRadius || camera.Elevation != math.Pi/2 {
		t.Errorf("new camera should start at the equatorial preset: %+v", camera)
	}

	camera.ApplyPreset(PresetCloseUp)
	if camera.Radius != 3.0e10 {
		t.Errorf("close-up preset radius wrong: %g", camera.Radius)
	}

	camera.Reset()
	if camera.Radius != defaultOrbitRadius || camera.Azimuth != 0 {
		t.Errorf("reset should restore the equatorial preset: %+v", camera)
	}
}

func TestOrbitCamera_Clamps(t *testing.T) {
	camera := NewOrbitCamera(core.NewVec3(0, 0, 0))

	camera.Orbit(0, 10)
	if camera.Elevation > math.Pi-elevationEpsilon+1e-12 {
		t.Errorf("elevation should clamp below the south pole, got %g", camera.Elevation)
	}
	camera.Orbit(0, -10)
	if camera.Elevation < elevationEpsilon-1e-12 {
		t.Errorf("elevation should clamp above the north pole, got %g", camera.Elevation)
	}

	camera.Zoom(-1e13)
	if camera.Radius != minOrbitRadius {
		t.Errorf("zoom should clamp at the minimum radius, got %g", camera.Radius)
	}
	camera.Zoom(1e13)
	if camera.Radius != maxOrbitRadius {
		t.Errorf("zoom should clamp at the maximum radius, got %g", camera.Radius)
	}

	// Azimuth wraps freely
	camera.Orbit(10*math.Pi, 0)
	if math.IsNaN(camera.Azimuth) {
		t.Error("azimuth should accumulate without restriction")
	}
}

func TestOrbitCamera_Position(t *testing.T) {
	target := core.NewVec3(5, -3, 2)
	camera := NewOrbitCamera(target)

	for _, preset := range []Preset{PresetEquatorial, PresetPolar, PresetCloseUp} {
		camera.ApplyPreset(preset)
		pos := camera.Position()
		if d := pos.Subtract(target).Length(); math.Abs(d-camera.Radius) > 1e-6*camera.Radius {
			t.Errorf("%v: position should sit on the orbit sphere, distance %g radius %g",
				preset, d, camera.Radius)
		}
	}
}

func TestOrbitCamera_Pose(t *testing.T) {
	camera := NewOrbitCamera(core.NewVec3(0, 0, 0))
	camera.Moving = true

	pose := camera.Pose(800, 600)

	if pose.Aspect != 800.0/600.0 {
		t.Errorf("expected aspect 4:3, got %g", pose.Aspect)
	}
	if !pose.Moving {
		t.Error("pose should carry the camera's moving flag")
	}

	// Forward points from the camera position at the target
	want := camera.Position().Negate().Normalize()
	if pose.Forward.Subtract(want).Length() > 1e-9 {
		t.Errorf("forward should aim at the target: got %v, want %v", pose.Forward, want)
	}
}
