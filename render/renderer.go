// Package render draws a scene graph through a perspective camera onto a
// gg drawing context.
//
// The renderer is a painter's-algorithm rasterizer: every visible triangle,
// point and sprite becomes a draw item shaded once by its material program,
// items are sorted far to near, and runs of additive items are composited
// through a screen-blended gg layer. Frames land on a Surface that is either
// offscreen or backed by a ggcanvas.Canvas for GPU presentation.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/page"
	"github.com/gogpu/vista/scene"
)

// ErrRendererClosed is returned when rendering after Close.
var ErrRendererClosed = errors.New("render: renderer is closed")

// Stats describes the last rendered frame.
type Stats struct {
	Frames    int
	Triangles int
	Points    int
	Sprites   int
	Culled    int
}

// Renderer draws scenes at a CSS size scaled by a capped device pixel ratio.
// It is used from a single frame loop goroutine.
type Renderer struct {
	opts       options
	surface    *Surface
	size       page.Size
	pixelRatio float64

	sprites map[*scene.Texture]*gg.ImageBuf
	items   []item
	stats   Stats
	closed  bool
}

// New creates a renderer for a viewport of size CSS pixels.
func New(size page.Size, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, size.Width, size.Height)
	}

	r := &Renderer{
		opts:       o,
		size:       size,
		pixelRatio: clampRatio(o.pixelRatio),
		sprites:    make(map[*scene.Texture]*gg.ImageBuf),
	}
	w, h := r.DrawingBufferSize()
	s, err := NewSurface(o.provider, w, h)
	if err != nil {
		return nil, err
	}
	r.surface = s
	vista.Logger().Debug("render: renderer created",
		"width", size.Width, "height", size.Height, "ratio", r.pixelRatio, "gpu", s.GPU())
	return r, nil
}

func clampRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 1
	}
	return min(r, MaxPixelRatio)
}

// Surface returns the surface frames are drawn to.
func (r *Renderer) Surface() *Surface { return r.surface }

// Size returns the viewport size in CSS pixels.
func (r *Renderer) Size() page.Size { return r.size }

// PixelRatio returns the effective device pixel ratio.
func (r *Renderer) PixelRatio() float64 { return r.pixelRatio }

// ClearColor returns the colour frames start from.
func (r *Renderer) ClearColor() gg.RGBA { return r.opts.clear }

// DrawingBufferSize returns the surface size in device pixels.
func (r *Renderer) DrawingBufferSize() (width, height int) {
	return max(1, int(math.Round(float64(r.size.Width)*r.pixelRatio))),
		max(1, int(math.Round(float64(r.size.Height)*r.pixelRatio)))
}

// SetPixelRatio changes the device pixel ratio, capped at MaxPixelRatio.
func (r *Renderer) SetPixelRatio(ratio float64) error {
	r.pixelRatio = clampRatio(ratio)
	return r.resizeSurface()
}

// SetSize changes the viewport size in CSS pixels.
func (r *Renderer) SetSize(size page.Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, size.Width, size.Height)
	}
	r.size = size
	return r.resizeSurface()
}

func (r *Renderer) resizeSurface() error {
	if r.closed {
		return ErrRendererClosed
	}
	w, h := r.DrawingBufferSize()
	return r.surface.Resize(w, h)
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Image returns a copy of the last frame, or nil once closed.
func (r *Renderer) Image() image.Image {
	if r.closed {
		return nil
	}
	return r.surface.Image()
}

// Render draws s as seen from cam.
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	if r.closed {
		return ErrRendererClosed
	}
	r.purgeSprites()

	w, h := r.surface.PixelSize()
	f := newFrame(cam, float64(w), float64(h), r.opts.minPoint)
	f.items = r.items[:0]
	f.sprite = r.spriteImage
	f.collect(s)
	r.items = f.items

	err := r.surface.Draw(func(dc *gg.Context) {
		if r.opts.clear == gg.Transparent {
			dc.Clear()
		} else {
			dc.ClearWithColor(r.opts.clear)
		}
		f.draw(dc)
	})
	if err != nil {
		return fmt.Errorf("render: draw frame: %w", err)
	}

	r.stats = Stats{
		Frames:    r.stats.Frames + 1,
		Triangles: f.triangles,
		Points:    f.points,
		Sprites:   f.spriteCount,
		Culled:    f.culled,
	}
	return nil
}

func (r *Renderer) spriteImage(t *scene.Texture) *gg.ImageBuf {
	if buf, ok := r.sprites[t]; ok {
		return buf
	}
	img := t.Image()
	if img == nil {
		return nil
	}
	buf := gg.ImageBufFromImage(img)
	r.sprites[t] = buf
	return buf
}

func (r *Renderer) purgeSprites() {
	for t := range r.sprites {
		if t.Disposed() {
			delete(r.sprites, t)
		}
	}
}

// Close releases the surface. Calling it again is a no-op.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	clear(r.sprites)
	r.items = nil
	return r.surface.Close()
}
