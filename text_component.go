package vantage

// TextComponent is a static screen-space caption. Position is pixels
// from the bottom-left corner of the window. Texture is filled in by
// the UI module once the string has been rasterized.
type TextComponent struct {
	Text     string
	Position [2]float32
	Size     float32
	Color    [4]float32
	Font     AssetId

	Texture AssetId
}
