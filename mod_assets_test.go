package vantage

import (
	"testing"

	"github.com/pkg/errors"
)

func testAssetServer() *AssetServer {
	return &AssetServer{
		scenes:      make(map[AssetId]*SceneAsset),
		textures:    make(map[AssetId]TextureAsset),
		fonts:       make(map[AssetId]FontAsset),
		completions: make(chan sceneLoadResult, 8),
		logger:      NewNopLogger(),
	}
}

func TestAssetServer_CreateTexture(t *testing.T) {
	server := testAssetServer()

	texels := []uint8{1, 2, 3, 4}
	id := server.CreateTexture(texels, 1, 1, TextureFormatRGBA8Unorm)

	tex, ok := server.Texture(id)
	if !ok {
		t.Fatalf("Expected the texture to be retrievable")
	}
	if tex.Width != 1 || tex.Height != 1 {
		t.Errorf("Unexpected texture dimensions: %vx%v", tex.Width, tex.Height)
	}
	if tex.Format != TextureFormatRGBA8Unorm {
		t.Errorf("Unexpected texture format: %v", tex.Format)
	}

	if _, ok := server.Texture(AssetId("unknown")); ok {
		t.Errorf("Expected an unknown texture id to miss")
	}

	// Ids are unique per asset.
	id2 := server.CreateTexture(texels, 1, 1, TextureFormatRGBA8Unorm)
	if id == id2 {
		t.Errorf("Expected distinct asset ids, got %v twice", id)
	}
}

func TestAssetPumpSystem(t *testing.T) {
	server := testAssetServer()

	okId := AssetId("ok")
	failId := AssetId("fail")
	server.completions <- sceneLoadResult{
		id:    okId,
		path:  "good.gltf",
		scene: &SceneAsset{Path: "good.gltf"},
	}
	server.completions <- sceneLoadResult{
		id:   failId,
		path: "bad.gltf",
		err:  errors.New("no such file"),
	}

	assetPumpSystem(server)

	if _, ok := server.Scene(okId); !ok {
		t.Errorf("Expected the successful load to be stored")
	}
	if _, ok := server.Scene(failId); ok {
		t.Errorf("Expected the failed load to be dropped")
	}
	if len(server.completions) != 0 {
		t.Errorf("Expected the completion channel to be drained")
	}

	// An empty channel is a no-op, not a block.
	assetPumpSystem(server)
}

func TestAssetServer_SceneMiss(t *testing.T) {
	server := testAssetServer()
	if _, ok := server.Scene(AssetId("in-flight")); ok {
		t.Errorf("Expected a pending handle to miss until the pump runs")
	}
}
