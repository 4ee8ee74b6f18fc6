package vantage

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPatchValue[T any](v T) *T {
	return &v
}

func TestMaterialPatch_Apply(t *testing.T) {
	mat := &MaterialAsset{
		Name:             "fire",
		AlphaMode:        AlphaOpaque,
		BaseColor:        [4]float32{1, 1, 1, 1},
		Roughness:        1,
		Reflectance:      0.5,
		FogEnabled:       true,
		BaseColorTexture: AssetId("base-tex"),
	}

	patch := MaterialPatch{
		Name:                    "fire",
		AlphaMode:               testPatchValue(AlphaAdd),
		BaseColor:               testPatchValue([4]float32{0, 0, 0, 1}),
		Reflectance:             testPatchValue(float32(0)),
		Emissive:                testPatchValue([3]float32{10, 10, 10}),
		EmissiveFromBaseTexture: true,
	}
	patch.apply(mat)

	assert.Equal(t, AlphaAdd, mat.AlphaMode)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, mat.BaseColor)
	assert.Equal(t, float32(0), mat.Reflectance)
	assert.Equal(t, [3]float32{10, 10, 10}, mat.Emissive)
	assert.Equal(t, AssetId("base-tex"), mat.EmissiveTexture)

	// Untouched fields keep their values.
	assert.Equal(t, float32(1), mat.Roughness)
	assert.True(t, mat.FogEnabled)
}

func TestMaterialPatch_NilFieldsLeaveMaterialAlone(t *testing.T) {
	mat := &MaterialAsset{
		Name:       "wood",
		AlphaMode:  AlphaBlend,
		BaseColor:  [4]float32{0.5, 0.3, 0.1, 1},
		Roughness:  0.8,
		FogEnabled: true,
	}
	before := *mat

	patch := MaterialPatch{Name: "wood"}
	patch.apply(mat)

	assert.Equal(t, before, *mat)
}

func TestNameMatchesAny(t *testing.T) {
	exclusions := []string{"fire", "smoke"}

	assert.True(t, nameMatchesAny("campfire_cone", exclusions))
	assert.True(t, nameMatchesAny("smoke_column", exclusions))
	assert.False(t, nameMatchesAny("fern", exclusions))
	// Matching is case sensitive.
	assert.False(t, nameMatchesAny("Fire_cone", exclusions))
	assert.False(t, nameMatchesAny("anything", nil))
}

func TestScenePatchModule_DefaultExclusions(t *testing.T) {
	app := NewAppBuilder().
		UseStates(State(0), State(2)).
		UseModule(
			AssetServerModule{},
			ScenePatchModule{
				ScenePath: "scene.gltf",
				Loading:   State(0),
				Viewing:   State(1),
			},
		).
		Build()

	res, ok := app.resources[reflect.TypeOf(scenePatchConfig{})]
	require.True(t, ok)
	cfg := res.(*scenePatchConfig)
	assert.Equal(t, []string{"fire", "smoke"}, cfg.shadowExclusions)
}

func testSceneAsset() *SceneAsset {
	return &SceneAsset{
		Path:  "test-scene.gltf",
		Roots: []int{0},
		Nodes: []SceneNode{
			{Name: "root", Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}, Mesh: -1, Children: []int{1, 2}},
			{Name: "campfire_fire", Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}, Mesh: 0},
			{Name: "bench", Scale: [3]float32{1, 1, 1}, Rotation: [4]float32{0, 0, 0, 1}, Mesh: 1},
		},
		Meshes: []MeshRef{
			{Name: "fire_mesh", Material: "fire"},
			{Name: "bench_mesh", Material: "wood"},
		},
		Materials: map[string]*MaterialAsset{
			"fire": {Name: "fire", BaseColor: [4]float32{1, 1, 1, 1}, FogEnabled: true},
			"wood": {Name: "wood", BaseColor: [4]float32{1, 1, 1, 1}, FogEnabled: true},
		},
	}
}

func testPatchApp(patches []MaterialPatch) (*App, *Commands, *AssetServer, *SceneLoadState, *scenePatchConfig) {
	app := NewAppBuilder().Build()
	cmd := app.Commands()

	assets := &AssetServer{
		scenes:      make(map[AssetId]*SceneAsset),
		textures:    make(map[AssetId]TextureAsset),
		fonts:       make(map[AssetId]FontAsset),
		completions: make(chan sceneLoadResult, 8),
		logger:      NewNopLogger(),
	}
	state := &SceneLoadState{}
	cfg := &scenePatchConfig{
		spawn: TransformComponent{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		patches:          patches,
		shadowExclusions: []string{"fire", "smoke"},
		viewing:          State(1),
	}
	return app, cmd, assets, state, cfg
}

func TestScenePollSystem_WaitsForTheAsset(t *testing.T) {
	app, cmd, assets, state, cfg := testPatchApp(nil)

	state.Handle = AssetId("pending")
	scenePollSystem(cfg, state, assets, cmd)

	assert.False(t, state.Loaded)
	app.FlushCommands()
	assert.Empty(t, app.ecs.entityIndex)
}

func TestScenePollSystem_PatchesAndSpawnsOnce(t *testing.T) {
	patches := []MaterialPatch{
		{Name: "fire", AlphaMode: testPatchValue(AlphaAdd)},
		{Name: "not-in-scene", Unlit: testPatchValue(true)},
	}
	app, cmd, assets, state, cfg := testPatchApp(patches)

	scene := testSceneAsset()
	state.Handle = AssetId("ready")
	assets.scenes[state.Handle] = scene

	scenePollSystem(cfg, state, assets, cmd)
	app.FlushCommands()

	assert.True(t, state.Loaded)
	assert.Equal(t, AlphaAdd, scene.Materials["fire"].AlphaMode)
	// A patch naming an absent material is skipped without touching
	// anything else.
	assert.Equal(t, AlphaOpaque, scene.Materials["wood"].AlphaMode)

	// Root plus three nodes.
	assert.Len(t, app.ecs.entityIndex, 4)

	// Loaded stays true and nothing respawns on later ticks.
	scenePollSystem(cfg, state, assets, cmd)
	app.FlushCommands()
	assert.True(t, state.Loaded)
	assert.Len(t, app.ecs.entityIndex, 4)
}

func TestSceneSweepSystem_MarksOnceAndExcludesShadows(t *testing.T) {
	app, cmd, assets, state, cfg := testPatchApp(nil)

	state.Handle = AssetId("ready")
	assets.scenes[state.Handle] = testSceneAsset()
	scenePollSystem(cfg, state, assets, cmd)
	app.FlushCommands()

	sceneSweepSystem(cfg, cmd)
	app.FlushCommands()

	marked := 0
	excluded := 0
	MakeQuery2[NameComponent, Patched](cmd).Map(func(eid EntityId, name *NameComponent, _ *Patched) bool {
		marked += 1
		if cmd.HasComponent(eid, NotShadowCaster{}) {
			excluded += 1
			assert.True(t, cmd.HasComponent(eid, NotShadowReceiver{}), "%s", name.Name)
			assert.Contains(t, name.Name, "fire")
		} else {
			assert.False(t, cmd.HasComponent(eid, NotShadowReceiver{}), "%s", name.Name)
		}
		return true
	})

	// Every named entity gets the marker; only the fire node gets the
	// shadow exclusions.
	assert.Equal(t, 4, marked)
	assert.Equal(t, 1, excluded)

	// A second sweep finds nothing left to mark.
	countPending := func() int {
		return len(app.pendingCompAdds)
	}
	sceneSweepSystem(cfg, cmd)
	assert.Equal(t, 0, countPending())
}
