package vantage

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraViewMatrix(t *testing.T) {
	cam := CameraComponent{
		Position: mgl32.Vec3{0, 0, 5},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
	}

	view := cam.ViewMatrix()

	// The camera sits on +Z looking at the origin; the origin ends up
	// 5 units down the view axis.
	origin := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, view)
	if !vec3Near(origin, mgl32.Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("Unexpected transformed origin: %v", origin)
	}

	// A zero up vector falls back to +Y instead of producing NaNs.
	cam.Up = mgl32.Vec3{}
	fallback := cam.ViewMatrix()
	if fallback != view {
		t.Errorf("Expected the zero up vector to behave like +Y")
	}
}

func TestCameraViewMatrix_Roll(t *testing.T) {
	cam := CameraComponent{
		Position: mgl32.Vec3{0, 0, 5},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Roll:     mgl32.DegToRad(90),
	}

	view := cam.ViewMatrix()

	// With a quarter-turn roll, a point above the target lands on the
	// view-space X axis.
	above := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, view)
	if !vec3Near(above, mgl32.Vec3{-1, 0, -5}, 1e-5) {
		t.Errorf("Unexpected rolled point: %v", above)
	}
}
