package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func TestLookAtPose_OrthonormalBasis(t *testing.T) {
	pose := LookAtPose(core.NewVec3(10, 5, -3), core.NewVec3(0, 0, 0), 60, 4.0/3.0)

	basis := []core.Vec3{pose.Right, pose.Up, pose.Forward}
	for i, v := range basis {
		if math.Abs(v.Length()-1) > 1e-12 {
			t.Errorf("basis vector %d is not unit length: %g", i, v.Length())
		}
		for j := i + 1; j < len(basis); j++ {
			if dot := v.Dot(basis[j]); math.Abs(dot) > 1e-12 {
				t.Errorf("basis vectors %d and %d are not orthogonal: %g", i, j, dot)
			}
		}
	}

	want := core.NewVec3(0, 0, 0).Subtract(core.NewVec3(10, 5, -3)).Normalize()
	if pose.Forward.Subtract(want).Length() > 1e-12 {
		t.Errorf("forward should point at the target: got %v, want %v", pose.Forward, want)
	}
}

func TestGenerateRay_CenterPixel(t *testing.T) {
	pose := LookAtPose(core.NewVec3(0, 0, -100), core.NewVec3(0, 0, 0), 60, 1.0)

	// With odd dimensions the central pixel center sits exactly on the axis
	ray := pose.GenerateRay(50, 50, 101, 101)
	if ray.Direction.Subtract(pose.Forward).Length() > 1e-12 {
		t.Errorf("center ray should follow the view axis: got %v, want %v", ray.Direction, pose.Forward)
	}
	if ray.Origin != pose.Position {
		t.Errorf("ray origin should be the camera position, got %v", ray.Origin)
	}
}

func TestGenerateRay_SpansFieldOfView(t *testing.T) {
	pose := LookAtPose(core.NewVec3(0, 0, -100), core.NewVec3(0, 0, 0), 90, 1.0)

	left := pose.GenerateRay(0, 50, 101, 101)
	right := pose.GenerateRay(100, 50, 101, 101)
	top := pose.GenerateRay(50, 0, 101, 101)

	if math.Abs(left.Direction.Length()-1) > 1e-12 {
		t.Errorf("ray direction should be normalized, got length %g", left.Direction.Length())
	}
	if left.Direction == right.Direction {
		t.Error("edge rays should diverge")
	}

	// Opposite edges mirror around the axis
	lu := left.Direction.Dot(pose.Right)
	ru := right.Direction.Dot(pose.Right)
	if math.Abs(lu+ru) > 1e-12 {
		t.Errorf("horizontal edge rays should be symmetric: %g vs %g", lu, ru)
	}
	if top.Direction.Dot(pose.Up) <= 0 {
		t.Error("top edge ray should tilt upward")
	}
}
