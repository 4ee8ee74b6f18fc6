package vantage

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type UiModule struct{}

func (UiModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(uiTextSystem).
			InStage(PreRender).
			RunAlways(),
	)
}

// uiTextSystem rasterizes captions to RGBA textures. Each component is
// processed once; a filled Texture handle marks it done. Captions whose
// font asset has not resolved yet are retried next tick.
func uiTextSystem(assets *AssetServer, cmd *Commands) {
	MakeQuery1[TextComponent](cmd).Map(func(eid EntityId, text *TextComponent) bool {
		if text.Texture != "" || text.Text == "" {
			return true
		}

		fontAsset, ok := assets.Font(text.Font)
		if !ok {
			return true
		}

		tex, ok := rasterizeText(assets, fontAsset, text)
		if ok {
			text.Texture = tex
		}
		return true
	})
}

func rasterizeText(assets *AssetServer, fontAsset FontAsset, text *TextComponent) (AssetId, bool) {
	size := text.Size
	if size <= 0 {
		size = 16
	}

	face, err := opentype.NewFace(fontAsset.Font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return "", false
	}
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, text.Text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return "", false
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(rgbaFromFloats(text.Color)),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	drawer.DrawString(text.Text)

	return assets.CreateTexture(
		img.Pix,
		uint32(width),
		uint32(height),
		TextureFormatRGBA8Unorm,
	), true
}

func rgbaFromFloats(c [4]float32) color.RGBA {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: clamp(c[0]), G: clamp(c[1]), B: clamp(c[2]), A: clamp(c[3])}
}
