package host

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/shader"
)

// Camera defaults.
const (
	DefaultFOV     = 45.0
	DefaultNear    = 0.1
	DefaultFar     = 1000.0
	DefaultCameraZ = 5.0
)

// Option configures Create.
type Option func(*options)

type options struct {
	fov        float64
	cameraZ    float64
	pixelRatio float64
	clear      gg.RGBA
	scheduler  anim.Scheduler
	viewport   bool
	shaderDev  shader.Device
}

func defaultOptions() options {
	return options{
		fov:     DefaultFOV,
		cameraZ: DefaultCameraZ,
		clear:   gg.Transparent,
	}
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(deg float64) Option {
	return func(o *options) {
		if deg > 0 && deg < 180 {
			o.fov = deg
		}
	}
}

// WithCameraZ sets how far the camera sits from the origin along +Z.
func WithCameraZ(z float64) Option {
	return func(o *options) { o.cameraZ = z }
}

// WithPixelRatio overrides the window's device pixel ratio. The renderer
// caps it at render.MaxPixelRatio either way.
func WithPixelRatio(r float64) Option {
	return func(o *options) { o.pixelRatio = r }
}

// WithClearColor replaces the transparent clear colour.
func WithClearColor(c gg.RGBA) Option {
	return func(o *options) { o.clear = c }
}

// WithScheduler drives the frame loop from s instead of a private
// TickerScheduler.
func WithScheduler(s anim.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithViewportResize makes the scene follow the window size instead of the
// container size, for full-page scenes.
func WithViewportResize() Option {
	return func(o *options) { o.viewport = true }
}

// WithShaderDevice compiles material programs onto dev. By default the
// device is taken from a GPU container's provider when it exposes one.
func WithShaderDevice(dev shader.Device) Option {
	return func(o *options) { o.shaderDev = dev }
}
