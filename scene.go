package vantage

import (
	"github.com/go-gl/mathgl/mgl32"
)

type NameComponent struct {
	Name string
}

// TransformComponent is the world-space transform. For entities inside
// a spawned hierarchy it is derived from LocalTransform by the
// hierarchy module; for roots it is authoritative.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type LocalTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type Parent struct {
	Entity EntityId
}

// MeshComponent ties an entity to geometry of a loaded scene asset.
// Material is the key into that asset's material table.
type MeshComponent struct {
	Scene    AssetId
	Mesh     int
	Material string
}

// SpawnScene instantiates one copy of a loaded scene under a fresh root
// entity carrying the given world transform. Node entities materialize
// at the next command flush, not during this call.
func SpawnScene(cmd *Commands, assets *AssetServer, sceneId AssetId, root TransformComponent) (EntityId, bool) {
	scene, ok := assets.Scene(sceneId)
	if !ok {
		return 0, false
	}

	rootEid := cmd.AddEntity(
		&NameComponent{Name: scene.Path},
		&TransformComponent{
			Position: root.Position,
			Rotation: root.Rotation,
			Scale:    root.Scale,
		},
	)

	for _, nodeIdx := range scene.Roots {
		spawnSceneNode(cmd, scene, sceneId, nodeIdx, rootEid)
	}

	return rootEid, true
}

func spawnSceneNode(cmd *Commands, scene *SceneAsset, sceneId AssetId, nodeIdx int, parent EntityId) {
	if nodeIdx < 0 || nodeIdx >= len(scene.Nodes) {
		return
	}
	node := scene.Nodes[nodeIdx]

	comps := []any{
		&Parent{Entity: parent},
		&LocalTransform{
			Position: mgl32.Vec3(node.Translation),
			Rotation: quatFromArray(node.Rotation),
			Scale:    mgl32.Vec3(node.Scale),
		},
		&TransformComponent{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
	if node.Name != "" {
		comps = append(comps, &NameComponent{Name: node.Name})
	}
	if node.Mesh >= 0 && node.Mesh < len(scene.Meshes) {
		comps = append(comps, &MeshComponent{
			Scene:    sceneId,
			Mesh:     node.Mesh,
			Material: scene.Meshes[node.Mesh].Material,
		})
	}

	eid := cmd.AddEntity(comps...)

	for _, child := range node.Children {
		spawnSceneNode(cmd, scene, sceneId, child, eid)
	}
}

func quatFromArray(q [4]float32) mgl32.Quat {
	return mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
}
