// Package mount is the page-facing entry point: it mounts a globe,
// backdrop or floating scene into a container and returns a handle whose
// Unmount tears it down.
//
// Mount failures never reach the page as errors. A missing or detached
// container, or a zero-sized one, is logged at Warn and yields a nil
// handle; every Handle method is safe on nil.
package mount

import (
	"sync"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/asset"
	"github.com/gogpu/vista/backdrop"
	"github.com/gogpu/vista/floating"
	"github.com/gogpu/vista/globe"
	"github.com/gogpu/vista/host"
	"github.com/gogpu/vista/interaction"
	"github.com/gogpu/vista/page"
)

// Camera placement per scene.
const (
	globeCameraZ    = 3
	backdropFOV     = 75
	floatingCameraZ = 5
)

// Handle is a mounted scene.
type Handle struct {
	ctx     *host.SceneContext
	pointer func() interaction.PointerState
}

// Unmount disposes the scene. It is a no-op on a nil handle and when
// called again.
func (h *Handle) Unmount() {
	if h == nil {
		return
	}
	h.ctx.Dispose()
}

// Mounted reports whether the scene is live.
func (h *Handle) Mounted() bool {
	return h != nil && !h.ctx.Disposed()
}

// Context returns the underlying scene context, nil for a nil handle.
func (h *Handle) Context() *host.SceneContext {
	if h == nil {
		return nil
	}
	return h.ctx
}

// PointerState returns the current pointer state of scenes driven by a
// container controller, and the zero state otherwise.
func (h *Handle) PointerState() interaction.PointerState {
	if h == nil || h.pointer == nil {
		return interaction.PointerState{}
	}
	return h.pointer()
}

func create(kind string, container page.Container, size page.Size, o options, defaults ...host.Option) *host.SceneContext {
	ctx, err := host.Create(container, size, append(defaults, o.hostOpts...)...)
	if err != nil {
		vista.Logger().Warn("mount: scene not mounted", "scene", kind, "err", err)
		return nil
	}
	return ctx
}

func start(kind string, ctx *host.SceneContext) *host.SceneContext {
	if err := ctx.Start(); err != nil {
		vista.Logger().Warn("mount: start loop", "scene", kind, "err", err)
		ctx.Dispose()
		return nil
	}
	vista.Logger().Info("mount: scene mounted", "scene", kind)
	return ctx
}

// Globe mounts the rotating earth into container, sized to it. The earth
// appears once its texture resolves; a failed load shows the fallback and
// reports OnError once.
func Globe(container page.Container, opts ...Option) *Handle {
	o := applyOptions(opts)
	if container == nil {
		vista.Logger().Warn("mount: scene not mounted", "scene", "globe", "err", host.ErrContainerDetached)
		return nil
	}
	ctx := create("globe", container, container.Size(), o, host.WithCameraZ(globeCameraZ))
	if ctx == nil {
		return nil
	}

	gopts, err := globe.OptionsFromConfig(o.config.Globe)
	if err != nil {
		vista.Logger().Warn("mount: globe config, using defaults", "err", err)
		gopts = globe.DefaultOptions()
	}
	g := globe.New(gopts)

	ctrl := interaction.New(container, gopts.Sensitivity)
	ctrl.Attach()
	ctx.OnTeardown(ctrl.Detach)
	ctx.OnUpdate(func(anim.Frame) { g.Update(ctrl.State()) })

	url := o.textureURL
	if url == "" {
		url = o.config.Globe.TextureURL
	}
	notifyError := once(o.onError)
	loader := asset.NewLoader(o.fetcher, ctx.PostOrDrop)
	loader.Load(ctx.Context(), url, func(res asset.Result) {
		if err := g.Resolve(ctx.Scene(), res); err != nil {
			vista.Logger().Warn("mount: globe built without label", "err", err)
		}
		if res.State == asset.Loaded {
			if o.onLoaded != nil {
				o.onLoaded()
			}
			return
		}
		notifyError(TextureLoadFailed)
	})

	if start("globe", ctx) == nil {
		return nil
	}
	return &Handle{ctx: ctx, pointer: ctrl.State}
}

// Backdrop mounts the full-page particle field. It follows the window
// size and the document-level pointer rather than the container's.
func Backdrop(container page.Container, opts ...Option) *Handle {
	o := applyOptions(opts)
	if container == nil || container.Window() == nil {
		vista.Logger().Warn("mount: scene not mounted", "scene", "backdrop", "err", host.ErrContainerDetached)
		return nil
	}
	win := container.Window()
	ctx := create("backdrop", container, win.Size(), o,
		host.WithFOV(backdropFOV), host.WithViewportResize())
	if ctx == nil {
		return nil
	}

	b := backdrop.New(ctx.Scene(), backdrop.OptionsFromConfig(o.config.Backdrop))
	vc := interaction.NewViewport(win)
	vc.Attach()
	ctx.OnTeardown(vc.Detach)
	ctx.OnUpdate(func(anim.Frame) { b.Update(vc.Target()) })

	if start("backdrop", ctx) == nil {
		return nil
	}
	return &Handle{ctx: ctx}
}

// Floating mounts the decorative cube into container, sized to it.
func Floating(container page.Container, opts ...Option) *Handle {
	o := applyOptions(opts)
	if container == nil {
		vista.Logger().Warn("mount: scene not mounted", "scene", "floating", "err", host.ErrContainerDetached)
		return nil
	}
	ctx := create("floating", container, container.Size(), o, host.WithCameraZ(floatingCameraZ))
	if ctx == nil {
		return nil
	}

	fopts, err := floating.OptionsFromConfig(o.config.Floating)
	if err != nil {
		vista.Logger().Warn("mount: floating config, using defaults", "err", err)
		fopts = floating.DefaultOptions()
	}
	f := floating.New(ctx.Scene(), fopts)
	ctrl := interaction.New(container, fopts.Sensitivity)
	ctrl.Attach()
	ctx.OnTeardown(ctrl.Detach)
	ctx.OnUpdate(func(fr anim.Frame) { f.Update(fr, ctrl.State()) })

	if start("floating", ctx) == nil {
		return nil
	}
	return &Handle{ctx: ctx, pointer: ctrl.State}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// once wraps fn so that only its first call goes through. A nil fn yields a
// no-op.
func once(fn func(string)) func(string) {
	var o sync.Once
	return func(msg string) {
		if fn == nil {
			return
		}
		o.Do(func() { fn(msg) })
	}
}
