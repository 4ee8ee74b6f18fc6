package vantage

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type OrbitCameraModule struct{}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(OrbitCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

// OrbitCameraComponent drives a camera along a closed-form orbital
// path. The transform is a pure function of elapsed time, recomputed
// from scratch every tick; nothing is integrated across frames.
//
// With t = elapsed·Rate:
//
//	radius(t) = RadiusBase − RadiusSwing·cos(t/RadiusPeriod)
//	position  = (radius·cos(t/OrbitPeriod), Height, radius·sin(t/OrbitPeriod))
//
// The look-at target runs a smaller orbit phase-shifted by GazePhase,
// which biases the gaze ahead of the camera's own motion, and a roll
// of radius·RollFactor radians is applied about the forward axis.
type OrbitCameraComponent struct {
	Rate         float64
	Height       float32
	RadiusBase   float64
	RadiusSwing  float64
	RadiusPeriod float64
	OrbitPeriod  float64
	GazePhase    float64
	GazeScale    float64
	RollFactor   float64
}

func (o OrbitCameraComponent) withDefaults() OrbitCameraComponent {
	if o.Rate == 0 {
		o.Rate = 1.5
	}
	if o.Height == 0 {
		o.Height = 1.8
	}
	if o.RadiusBase == 0 {
		o.RadiusBase = 5.1
	}
	if o.RadiusSwing == 0 {
		o.RadiusSwing = 4
	}
	if o.RadiusPeriod == 0 {
		o.RadiusPeriod = 10
	}
	if o.OrbitPeriod == 0 {
		o.OrbitPeriod = 5
	}
	if o.GazePhase == 0 {
		o.GazePhase = 2.3
	}
	if o.GazeScale == 0 {
		o.GazeScale = 0.1
	}
	if o.RollFactor == 0 {
		o.RollFactor = 0.01
	}
	return o
}

// orbitRadius is the breathing zoom: bounded by
// RadiusBase ± RadiusSwing for all t.
func orbitRadius(o OrbitCameraComponent, t float64) float64 {
	return o.RadiusBase - o.RadiusSwing*math.Cos(t/o.RadiusPeriod)
}

// orbitPose computes the full camera pose at scaled time t.
func orbitPose(o OrbitCameraComponent, t float64) (position, target mgl32.Vec3, roll float32) {
	radius := orbitRadius(o, t)

	position = mgl32.Vec3{
		float32(math.Cos(t/o.OrbitPeriod) * radius),
		o.Height,
		float32(math.Sin(t/o.OrbitPeriod) * radius),
	}

	gaze := radius * o.GazeScale
	target = mgl32.Vec3{
		float32(math.Sin((t+o.GazePhase)/o.OrbitPeriod) * gaze),
		float32(gaze),
		float32(math.Cos((t+o.GazePhase)/o.OrbitPeriod) * gaze),
	}

	roll = float32(radius * o.RollFactor)
	return position, target, roll
}

func OrbitCameraSystem(time *Time, cmd *Commands) {
	MakeQuery2[CameraComponent, OrbitCameraComponent](cmd).Map(
		func(eid EntityId, cam *CameraComponent, orbit *OrbitCameraComponent) bool {
			o := orbit.withDefaults()
			t := time.Elapsed * o.Rate

			position, target, roll := orbitPose(o, t)

			cam.Position = position
			cam.LookAt = target
			cam.Up = mgl32.Vec3{0, 1, 0}
			cam.Roll = roll
			return true
		})
}
