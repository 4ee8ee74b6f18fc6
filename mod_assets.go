package vantage

import (
	"image"
	"image/png"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatR8Uint     TextureFormat = 0x00000003
	TextureFormatRGBA8Unorm TextureFormat = 0x00000012
)

// AlphaMode is the transparency policy of a material.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
	AlphaMask     // discard below Cutoff
	AlphaAdd      // additive
	AlphaMultiply // multiplicative
)

// MaterialAsset is one entry of a scene's material table. Entries are
// shared: every mesh referencing the material sees edits made here.
type MaterialAsset struct {
	Name             string
	AlphaMode        AlphaMode
	AlphaCutoff      float32
	BaseColor        [4]float32
	Emissive         [3]float32
	Metallic         float32
	Roughness        float32
	Reflectance      float32
	DepthBias        float32
	Unlit            bool
	FogEnabled       bool
	BaseColorTexture AssetId // empty when absent
	EmissiveTexture  AssetId
}

// SceneNode is one node of an imported scene hierarchy. Mesh is an
// index into the asset's Meshes, -1 when the node carries no geometry.
type SceneNode struct {
	Name        string
	Translation [3]float32
	Rotation    [4]float32 // x, y, z, w
	Scale       [3]float32
	Mesh        int
	Children    []int
}

type MeshRef struct {
	Name     string
	Material string // material table key, empty when unassigned
}

// SceneAsset is a fully imported scene: root indices, flat node list,
// and the name→material table.
type SceneAsset struct {
	Path      string
	Roots     []int
	Nodes     []SceneNode
	Meshes    []MeshRef
	Materials map[string]*MaterialAsset
}

// Material looks a material up by its author-assigned name. Absence is
// an expected condition, not an error.
func (s *SceneAsset) Material(name string) (*MaterialAsset, bool) {
	m, ok := s.Materials[name]
	return m, ok
}

type TextureAsset struct {
	Texels []uint8
	Width  uint32
	Height uint32
	Format TextureFormat
}

type FontAsset struct {
	Font *sfnt.Font
}

type sceneLoadResult struct {
	id    AssetId
	path  string
	scene *SceneAsset
	err   error
}

// AssetServer owns every loaded asset, keyed by opaque ids. Scene files
// are parsed on a loader goroutine; results come back over completions
// and only the per-tick pump writes them into the table, so the maps
// are never touched off the engine tick.
type AssetServer struct {
	scenes      map[AssetId]*SceneAsset
	textures    map[AssetId]TextureAsset
	fonts       map[AssetId]FontAsset
	completions chan sceneLoadResult
	logger      Logger
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AssetServer{
		scenes:      make(map[AssetId]*SceneAsset),
		textures:    make(map[AssetId]TextureAsset),
		fonts:       make(map[AssetId]FontAsset),
		completions: make(chan sceneLoadResult, 8),
		logger:      app.Logger(),
	})
	app.UseSystem(
		System(assetPumpSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

// LoadScene starts an asynchronous scene import and returns the handle
// immediately. Poll Scene() with the handle until it resolves.
func (server *AssetServer) LoadScene(path string) AssetId {
	id := makeAssetId()

	go func() {
		scene, err := importGltfScene(path)
		server.completions <- sceneLoadResult{id: id, path: path, scene: scene, err: err}
	}()

	return id
}

// Scene returns the loaded scene for a handle, or false while the load
// is still in flight (or has failed).
func (server *AssetServer) Scene(id AssetId) (*SceneAsset, bool) {
	scene, ok := server.scenes[id]
	return scene, ok
}

func assetPumpSystem(server *AssetServer) {
	for {
		select {
		case res := <-server.completions:
			if res.err != nil {
				server.logger.Errorf("asset: loading %s: %v", res.path, res.err)
				continue
			}
			server.scenes[res.id] = res.scene
			server.logger.Debugf("asset: scene %s ready (%d nodes, %d materials)",
				res.path, len(res.scene.Nodes), len(res.scene.Materials))
		default:
			return
		}
	}
}

func (server *AssetServer) CreateTexture(texels []uint8, width uint32, height uint32, format TextureFormat) AssetId {
	id := makeAssetId()

	server.textures[id] = TextureAsset{
		Texels: texels,
		Width:  width,
		Height: height,
		Format: format,
	}

	return id
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tex, ok := server.textures[id]
	return tex, ok
}

func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", errors.Wrapf(err, "opening texture %s", filename)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", errors.Wrapf(err, "decoding texture %s", filename)
	}

	bounds := img.Bounds()
	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		rgbaImg = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgbaImg.Set(x, y, img.At(x, y))
			}
		}
	}

	return server.CreateTexture(
		rgbaImg.Pix,
		uint32(bounds.Dx()),
		uint32(bounds.Dy()),
		TextureFormatRGBA8Unorm,
	), nil
}

func (server *AssetServer) LoadFont(filename string) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "reading font %s", filename)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return "", errors.Wrapf(err, "parsing font %s", filename)
	}

	id := makeAssetId()
	server.fonts[id] = FontAsset{Font: parsed}
	return id, nil
}

func (server *AssetServer) Font(id AssetId) (FontAsset, bool) {
	f, ok := server.fonts[id]
	return f, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
