package scene

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// Texture is an image bound to materials. Only the scene that created it
// may dispose it.
type Texture struct {
	Name string

	img      image.Image
	disposed bool
}

// NewTexture wraps img. A nil image produces a texture that samples as
// transparent black.
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{Name: name, img: img}
}

// Image returns the backing image, or nil once disposed.
func (t *Texture) Image() image.Image {
	if t == nil || t.disposed {
		return nil
	}
	return t.img
}

// Size returns the pixel dimensions, zero once disposed.
func (t *Texture) Size() (w, h int) {
	img := t.Image()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Sample returns the nearest texel at uv. U wraps around and V is clamped;
// v=1 is the top row of the image.
func (t *Texture) Sample(uv mgl64.Vec2) gg.RGBA {
	img := t.Image()
	if img == nil {
		return gg.Transparent
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gg.Transparent
	}

	u := uv.X() - math.Floor(uv.X())
	v := min(max(uv.Y(), 0), 1)

	x := min(int(u*float64(w)), w-1)
	y := min(int((1-v)*float64(h)), h-1)
	return gg.FromColor(img.At(b.Min.X+x, b.Min.Y+y))
}

// Dispose releases the image. Calling it again is a no-op.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.img = nil
}

// Disposed reports whether Dispose has run.
func (t *Texture) Disposed() bool { return t.disposed }
