package vantage

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// importGltfScene parses a glTF file and flattens it into a SceneAsset.
// Parsing is qmuntal/gltf's job; this only maps the document onto the
// engine's asset model. Meshes keep a reference to the material table
// key so a later material edit is visible to every node using it.
func importGltfScene(path string) (*SceneAsset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scene %s", path)
	}
	return sceneFromGltf(path, doc)
}

func sceneFromGltf(path string, doc *gltf.Document) (*SceneAsset, error) {
	if len(doc.Nodes) == 0 {
		return nil, errors.Errorf("scene %s has no nodes", path)
	}

	scene := &SceneAsset{
		Path:      path,
		Nodes:     make([]SceneNode, 0, len(doc.Nodes)),
		Meshes:    make([]MeshRef, 0, len(doc.Meshes)),
		Materials: make(map[string]*MaterialAsset, len(doc.Materials)),
	}

	materialNames := make([]string, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := materialFromGltf(m)
		materialNames[i] = mat.Name
		scene.Materials[mat.Name] = mat
	}

	for _, m := range doc.Meshes {
		ref := MeshRef{Name: m.Name}
		// One material per mesh is enough for this model; the first
		// primitive wins.
		if len(m.Primitives) > 0 && m.Primitives[0].Material != nil {
			idx := int(*m.Primitives[0].Material)
			if idx < len(materialNames) {
				ref.Material = materialNames[idx]
			}
		}
		scene.Meshes = append(scene.Meshes, ref)
	}

	for _, n := range doc.Nodes {
		node := SceneNode{
			Name:        n.Name,
			Translation: n.Translation,
			Rotation:    n.Rotation,
			Scale:       n.Scale,
			Mesh:        -1,
		}
		if node.Scale == ([3]float32{}) {
			node.Scale = [3]float32{1, 1, 1}
		}
		if node.Rotation == ([4]float32{}) {
			node.Rotation = [4]float32{0, 0, 0, 1}
		}
		if n.Mesh != nil {
			node.Mesh = int(*n.Mesh)
		}
		for _, child := range n.Children {
			node.Children = append(node.Children, int(child))
		}
		scene.Nodes = append(scene.Nodes, node)
	}

	scene.Roots = gltfSceneRoots(doc)
	return scene, nil
}

// gltfSceneRoots returns the node indices of the document's default
// scene. Files without an explicit scene entry fall back to nodes that
// are nobody's child.
func gltfSceneRoots(doc *gltf.Document) []int {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < len(doc.Scenes) {
		roots := make([]int, 0, len(doc.Scenes[sceneIdx].Nodes))
		for _, n := range doc.Scenes[sceneIdx].Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	isChild := make(set[int])
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[int(c)] = struct{}{}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if _, ok := isChild[i]; !ok {
			roots = append(roots, i)
		}
	}
	return roots
}

func materialFromGltf(m *gltf.Material) *MaterialAsset {
	mat := &MaterialAsset{
		Name:        m.Name,
		BaseColor:   [4]float32{1, 1, 1, 1},
		Emissive:    m.EmissiveFactor,
		Metallic:    1,
		Roughness:   1,
		Reflectance: 0.5,
		FogEnabled:  true,
	}

	switch m.AlphaMode {
	case gltf.AlphaMask:
		mat.AlphaMode = AlphaMask
		mat.AlphaCutoff = 0.5
		if m.AlphaCutoff != nil {
			mat.AlphaCutoff = *m.AlphaCutoff
		}
	case gltf.AlphaBlend:
		mat.AlphaMode = AlphaBlend
	default:
		mat.AlphaMode = AlphaOpaque
	}

	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			mat.BaseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			mat.Metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			mat.Roughness = *pbr.RoughnessFactor
		}
		if pbr.BaseColorTexture != nil {
			mat.BaseColorTexture = gltfTextureId(pbr.BaseColorTexture.Index)
		}
	}
	if m.EmissiveTexture != nil {
		mat.EmissiveTexture = gltfTextureId(m.EmissiveTexture.Index)
	}

	return mat
}

// gltfTextureId derives a stable per-document texture handle. Texture
// texels stay on disk; the handle only records which image a material
// points at, which is all the patch step needs to copy references.
func gltfTextureId(index uint32) AssetId {
	return AssetId("gltf-texture-" + strconv.FormatUint(uint64(index), 10))
}
