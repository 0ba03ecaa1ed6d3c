package geo

import (
	"image"

	"github.com/gogpu/gg"
)

// Fallback texture geometry and colours: a dark-to-light blue vertical
// gradient that reads as an ocean when wrapped around the sphere.
const (
	FallbackWidth  = 512
	FallbackHeight = 256
)

var (
	fallbackTop    = gg.Hex("#001a33")
	fallbackBottom = gg.Hex("#0066cc")
)

// FallbackTexture synthesizes the placeholder earth texture offscreen.
// Each call returns a fresh image the caller owns.
func FallbackTexture() *image.RGBA {
	return GradientTexture(FallbackWidth, FallbackHeight, fallbackTop, fallbackBottom)
}

// GradientTexture fills a w×h bitmap with a top-to-bottom linear gradient.
// Non-positive dimensions are clamped to 1 so callers always get a usable
// texture.
func GradientTexture(w, h int, top, bottom gg.RGBA) *image.RGBA {
	w, h = max(w, 1), max(h, 1)

	dc := gg.NewContext(w, h)
	defer dc.Close()

	grad := gg.NewLinearGradientBrush(0, 0, 0, float64(h)).
		AddColorStop(0, top).
		AddColorStop(1, bottom)
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = dc.Fill()

	return dc.Image().(*image.RGBA)
}
