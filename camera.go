package vantage

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Tonemapping uint32

const (
	TonemappingNone Tonemapping = iota
	TonemappingReinhard
	TonemappingDisplayTransform
)

// CameraComponent describes the view. The renderer consumes what its
// backend supports and ignores the rest; the fields still define the
// intended image.
type CameraComponent struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3
	Roll     float32 // about the forward axis, radians

	Fov  float32
	Near float32
	Far  float32

	Hdr            bool
	Tonemapping    Tonemapping
	Exposure       float32
	PostSaturation float32
}

type FogFalloff uint32

const (
	FogFalloffLinear FogFalloff = iota
	FogFalloffExponential
)

type FogSettings struct {
	Falloff FogFalloff
	Start   float32
	End     float32
	Color   [3]float32
}

type BloomSettings struct {
	Intensity         float32
	HighPassFrequency float32
}

// ViewMatrix builds the camera matrix from position, target, up, and
// the extra roll applied about the view direction.
func (c *CameraComponent) ViewMatrix() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	view := mgl32.LookAtV(c.Position, c.LookAt, up)
	if c.Roll != 0 {
		view = mgl32.HomogRotate3DZ(c.Roll).Mul4(view)
	}
	return view
}
