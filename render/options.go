package render

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// MaxPixelRatio caps the device pixel ratio the renderer draws at.
const MaxPixelRatio = 2.0

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(size,
//		render.WithPixelRatio(win.DevicePixelRatio()),
//		render.WithDeviceProvider(provider))
type Option func(*options)

type options struct {
	clear      gg.RGBA
	pixelRatio float64
	provider   gpucontext.DeviceProvider
	minPoint   float64
}

func defaultOptions() options {
	return options{
		clear:      gg.Transparent,
		pixelRatio: 1,
		minPoint:   1,
	}
}

// WithClearColor sets the colour each frame starts from.
// The default is fully transparent so the page shows through.
func WithClearColor(c gg.RGBA) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithPixelRatio sets the initial device pixel ratio. Values above
// MaxPixelRatio are capped.
func WithPixelRatio(r float64) Option {
	return func(o *options) {
		o.pixelRatio = r
	}
}

// WithDeviceProvider renders into a ggcanvas.Canvas backed by the given GPU
// device so frames can be presented with Surface.Present. Without it the
// renderer draws into an offscreen gg context only.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithMinPointSize sets the smallest diameter, in device pixels, a point is
// drawn at.
func WithMinPointSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.minPoint = px
		}
	}
}
