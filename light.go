package vantage

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
)

// LightComponent is the ECS component for lights.
type LightComponent struct {
	Type           LightType
	Color          [3]float32
	Intensity      float32
	Range          float32 // point/spot
	Radius         float32 // emitter size, for soft shadows
	ConeAngle      float32 // full cone angle in degrees (spot)
	ShadowsEnabled bool
}

// CascadeShadowConfig tunes directional-light cascades. Attached next
// to a directional LightComponent.
type CascadeShadowConfig struct {
	FirstCascadeFarBound float32
	MaximumDistance      float32
}

// NotShadowCaster excludes an entity's geometry from shadow maps.
type NotShadowCaster struct{}

// NotShadowReceiver keeps shadows from being sampled onto an entity.
type NotShadowReceiver struct{}

// AmbientLight is a resource: the scene-wide base illumination.
type AmbientLight struct {
	Color      [3]float32
	Brightness float32
}

// ClearColor is a resource: what the surface is cleared to each frame.
type ClearColor struct {
	R, G, B, A float64
}
