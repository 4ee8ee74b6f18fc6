package vantage

import (
	"strings"
)

// Patched marks a scene-graph entity whose post-spawn fix-up has run.
// An entity acquires it at most once; entities still lacking it are
// exactly the ones the sweep has not reached yet.
type Patched struct{}

// SceneLoadState tracks the one scene asset this viewer displays.
// Loaded goes false→true exactly once and never reverts.
type SceneLoadState struct {
	Loaded bool
	Handle AssetId
}

// MaterialPatch is a by-name edit of a scene material. Nil fields are
// left untouched. A patch whose material is missing from the asset is
// silently skipped; scenes may omit optional decorative elements.
type MaterialPatch struct {
	Name string

	AlphaMode   *AlphaMode
	AlphaCutoff *float32
	BaseColor   *[4]float32
	Emissive    *[3]float32
	Reflectance *float32
	Roughness   *float32
	DepthBias   *float32
	Unlit       *bool
	FogEnabled  *bool

	// Reuse the base color texture as the emissive texture. Used for
	// fire/smoke sprites whose glow is baked into the albedo image.
	EmissiveFromBaseTexture bool
}

func (p *MaterialPatch) apply(mat *MaterialAsset) {
	if p.AlphaMode != nil {
		mat.AlphaMode = *p.AlphaMode
	}
	if p.AlphaCutoff != nil {
		mat.AlphaCutoff = *p.AlphaCutoff
	}
	if p.BaseColor != nil {
		mat.BaseColor = *p.BaseColor
	}
	if p.Emissive != nil {
		mat.Emissive = *p.Emissive
	}
	if p.Reflectance != nil {
		mat.Reflectance = *p.Reflectance
	}
	if p.Roughness != nil {
		mat.Roughness = *p.Roughness
	}
	if p.DepthBias != nil {
		mat.DepthBias = *p.DepthBias
	}
	if p.Unlit != nil {
		mat.Unlit = *p.Unlit
	}
	if p.FogEnabled != nil {
		mat.FogEnabled = *p.FogEnabled
	}
	if p.EmissiveFromBaseTexture {
		mat.EmissiveTexture = mat.BaseColorTexture
	}
}

// ScenePatchModule drives the deferred load-patch-spawn sequence:
//
// While the app sits in the Loading state, it polls the asset server
// for the scene. The tick the asset resolves, it applies the material
// patches, spawns one instance, flips SceneLoadState, and moves the
// app to the Viewing state. In Viewing, a per-tick sweep tags entities
// the spawn has materialized since the last flush: names containing a
// shadow-exclusion substring get NotShadowCaster and NotShadowReceiver
// along with the Patched marker, everything else just the marker. Once
// every entity is marked the sweep matches nothing and the steady
// state is a no-op.
//
// The two-phase shape exists because node names are not addressable
// until the asset has loaded and been instantiated, and instantiation
// itself lands across command-flush boundaries.
type ScenePatchModule struct {
	ScenePath string
	Spawn     TransformComponent
	Patches   []MaterialPatch

	// Case-sensitive, unanchored substrings. Defaults to fire/smoke.
	ShadowExclusions []string

	Loading State
	Viewing State
}

type scenePatchConfig struct {
	spawn            TransformComponent
	patches          []MaterialPatch
	shadowExclusions []string
	viewing          State
}

func (m ScenePatchModule) Install(app *App, cmd *Commands) {
	exclusions := m.ShadowExclusions
	if exclusions == nil {
		exclusions = []string{"fire", "smoke"}
	}

	cmd.AddResources(
		&SceneLoadState{},
		&scenePatchConfig{
			spawn:            m.Spawn,
			patches:          m.Patches,
			shadowExclusions: exclusions,
			viewing:          m.Viewing,
		},
		&scenePathHolder{path: m.ScenePath},
	)

	app.UseSystem(
		System(sceneLoadStartSystem).
			InStage(Update).
			InState(OnEnter(m.Loading)),
	)
	app.UseSystem(
		System(scenePollSystem).
			InStage(Update).
			InState(OnExecute(m.Loading)),
	)
	app.UseSystem(
		System(sceneSweepSystem).
			InStage(Update).
			InState(OnExecute(m.Viewing)),
	)
}

type scenePathHolder struct {
	path string
}

func sceneLoadStartSystem(holder *scenePathHolder, state *SceneLoadState, assets *AssetServer) {
	state.Handle = assets.LoadScene(holder.path)
}

func scenePollSystem(cfg *scenePatchConfig, state *SceneLoadState, assets *AssetServer, cmd *Commands) {
	if state.Loaded {
		return
	}

	scene, ok := assets.Scene(state.Handle)
	if !ok {
		return
	}

	for i := range cfg.patches {
		patch := &cfg.patches[i]
		if mat, found := scene.Material(patch.Name); found {
			patch.apply(mat)
		}
	}

	SpawnScene(cmd, assets, state.Handle, cfg.spawn)

	state.Loaded = true
	cmd.ChangeState(cfg.viewing)
}

func sceneSweepSystem(cfg *scenePatchConfig, cmd *Commands) {
	MakeQuery1[NameComponent](cmd).Without(Patched{}).Map(func(eid EntityId, name *NameComponent) bool {
		if nameMatchesAny(name.Name, cfg.shadowExclusions) {
			cmd.AddComponents(eid, &NotShadowCaster{}, &NotShadowReceiver{}, &Patched{})
		} else {
			cmd.AddComponents(eid, &Patched{})
		}
		return true
	})
}

func nameMatchesAny(name string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
