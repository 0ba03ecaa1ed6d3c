// Package host owns the render context of one mounted scene.
//
// Create binds a scene root, a perspective camera, a renderer and a frame
// loop to a page container. Dispose tears it down in a fixed order: stop
// the loop, remove listeners, release scene resources, detach the render
// surface. Both Dispose and the package-level Dispose are no-ops on a nil
// or already disposed context.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/page"
	"github.com/gogpu/vista/render"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

var (
	// ErrContainerDetached is returned when the container is missing or not
	// part of a layout tree.
	ErrContainerDetached = errors.New("host: container is not attached")

	// ErrInvalidViewport is returned for a non-positive viewport size.
	ErrInvalidViewport = errors.New("host: invalid viewport size")
)

// SceneContext is one mounted scene. Scene, camera and renderer are only
// touched from the frame loop goroutine once Start has been called; the
// event-facing methods RequestResize, Post and Dispose are safe from any
// goroutine.
type SceneContext struct {
	container page.Container
	scene     *scene.Scene
	camera    *scene.PerspectiveCamera
	renderer  *render.Renderer
	driver    *anim.Driver
	shaderDev shader.Device

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// loop goroutine only
	updates      []func(anim.Frame)
	resources    scene.Resources
	shadersDirty bool
	shaderErr    bool

	mu        sync.Mutex
	pending   *page.Size
	handles   []page.Handle
	teardowns []func()
	disposed  bool
}

// Create builds a scene context sized to size CSS pixels inside container.
// The loop does not run until Start.
func Create(container page.Container, size page.Size, opts ...Option) (*SceneContext, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if container == nil || !container.Attached() {
		return nil, ErrContainerDetached
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, size.Width, size.Height)
	}

	ratio := o.pixelRatio
	if ratio <= 0 {
		ratio = 1
		if w := container.Window(); w != nil {
			ratio = w.DevicePixelRatio()
		}
	}
	ropts := []render.Option{
		render.WithPixelRatio(ratio),
		render.WithClearColor(o.clear),
	}
	shaderDev := o.shaderDev
	if gc, ok := container.(page.GPUContainer); ok {
		if p := gc.DeviceProvider(); p != nil {
			ropts = append(ropts, render.WithDeviceProvider(p))
			if shaderDev == nil {
				dev, err := shader.DeviceFrom(p)
				if err != nil {
					vista.Logger().Debug("host: shader compilation disabled", "err", err)
				}
				shaderDev = dev
			}
		}
	}

	r, err := render.New(size, ropts...)
	if err != nil {
		return nil, fmt.Errorf("host: create renderer: %w", err)
	}
	if err := container.AppendSurface(r.Surface()); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %w", ErrContainerDetached, err)
	}

	cam := scene.NewPerspectiveCamera(o.fov, size.Aspect(), DefaultNear, DefaultFar)
	cam.Position[2] = o.cameraZ

	c := &SceneContext{
		container:    container,
		scene:        scene.NewScene(),
		camera:       cam,
		renderer:     r,
		shaderDev:    shaderDev,
		done:         make(chan struct{}),
		shadersDirty: true,
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	dopts := []anim.Option{
		anim.WithUniforms(c.scene.Uniforms),
		anim.WithUpdate(c.update),
		anim.WithRender(c.render),
	}
	if o.scheduler != nil {
		dopts = append(dopts, anim.WithScheduler(o.scheduler))
	}
	c.driver = anim.New(dopts...)

	if o.viewport && container.Window() != nil {
		c.handles = append(c.handles, container.Window().OnResize(c.RequestResize))
	} else {
		c.handles = append(c.handles, container.ObserveResize(c.RequestResize))
	}

	w, h := r.DrawingBufferSize()
	vista.Logger().Debug("host: scene created",
		"width", size.Width, "height", size.Height,
		"buffer_width", w, "buffer_height", h, "gpu", r.Surface().GPU())
	return c, nil
}

// Scene returns the scene root.
func (c *SceneContext) Scene() *scene.Scene { return c.scene }

// Camera returns the camera.
func (c *SceneContext) Camera() *scene.PerspectiveCamera { return c.camera }

// Renderer returns the renderer.
func (c *SceneContext) Renderer() *render.Renderer { return c.renderer }

// Container returns the element the scene is mounted in.
func (c *SceneContext) Container() page.Container { return c.container }

// Context is cancelled when teardown begins. Background work such as
// texture loads should observe it.
func (c *SceneContext) Context() context.Context { return c.ctx }

// Done is closed once teardown has completed.
func (c *SceneContext) Done() <-chan struct{} { return c.done }

// OnUpdate appends a per-frame update step. Steps run in order after the
// clock has been written into every uniform set and before rendering.
// Register steps before Start.
func (c *SceneContext) OnUpdate(fn func(anim.Frame)) {
	c.updates = append(c.updates, fn)
}

// OnTeardown registers fn to run in the listener-removal step of Dispose.
// Callbacks run in reverse registration order.
func (c *SceneContext) OnTeardown(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardowns = append(c.teardowns, fn)
}

// Track registers resources that live outside the scene graph so Dispose
// releases them too. Everything reachable from the scene root is released
// without tracking. Call it from the loop goroutine or before Start.
func (c *SceneContext) Track(ds ...scene.Disposable) {
	c.resources.Track(ds...)
}

// Post runs fn on the loop goroutine before the next frame. It reports
// false once the context is disposed.
func (c *SceneContext) Post(fn func()) bool {
	return c.PostOrDrop(fn, nil)
}

// PostOrDrop is Post with a cleanup that runs instead of fn when the
// context is disposed before the next frame.
func (c *SceneContext) PostOrDrop(fn, drop func()) bool {
	return c.driver.PostOrDrop(func() {
		fn()
		c.shadersDirty = true
	}, drop)
}

// Start runs the frame loop.
func (c *SceneContext) Start() error {
	if c.Disposed() {
		return fmt.Errorf("host: start: %w", anim.ErrStopped)
	}
	return c.driver.Start()
}

// RequestResize records a new viewport size to apply before the next
// frame. It is what resize notifications call.
func (c *SceneContext) RequestResize(size page.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.pending = &size
}

// Resize applies a new viewport size now: camera aspect, projection and
// renderer size. Call it from the loop goroutine or while the loop is not
// running. Sizes with a non-positive side are ignored so a collapsed
// container keeps its last image.
func (c *SceneContext) Resize(size page.Size) {
	if c == nil || c.Disposed() {
		return
	}
	if !size.Valid() {
		vista.Logger().Debug("host: ignoring resize", "width", size.Width, "height", size.Height)
		return
	}
	c.camera.Aspect = size.Aspect()
	c.camera.UpdateProjectionMatrix()
	if err := c.renderer.SetSize(size); err != nil {
		vista.Logger().Warn("host: resize renderer", "err", err)
	}
}

func (c *SceneContext) applyPendingResize() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	if pending != nil {
		c.Resize(*pending)
	}
}

func (c *SceneContext) update(f anim.Frame) {
	c.applyPendingResize()
	for _, fn := range c.updates {
		fn(f)
	}
}

func (c *SceneContext) render(anim.Frame) error {
	if c.shaderDev != nil && c.shadersDirty {
		c.shadersDirty = false
		n, err := shader.BindScene(c.shaderDev, c.scene)
		if err != nil && !c.shaderErr {
			c.shaderErr = true
			vista.Logger().Warn("host: shader compilation failed", "err", err)
		}
		if n > 0 {
			vista.Logger().Debug("host: shaders bound", "materials", n)
		}
	}
	return c.renderer.Render(c.scene, c.camera)
}

// Disposed reports whether Dispose has been called. When Dispose runs
// inside a frame, Disposed is true before teardown completes and the
// surface stays attached until that frame returns; wait on Done for the
// end of teardown.
func (c *SceneContext) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Dispose tears the context down. A frame in flight finishes rendering
// first and the remaining steps run when it returns; Done reports
// completion. Calling Dispose again is a no-op.
func (c *SceneContext) Dispose() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.pending = nil
	c.mu.Unlock()

	c.cancel()
	c.driver.StopThen(c.teardown)
}

func (c *SceneContext) teardown() {
	c.mu.Lock()
	handles := c.handles
	teardowns := c.teardowns
	c.handles, c.teardowns = nil, nil
	c.mu.Unlock()

	for _, h := range handles {
		h.Remove()
	}
	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}

	c.resources.TrackGraph(c.scene)
	released := c.resources.Release()

	c.container.RemoveSurface(c.renderer.Surface())
	if err := c.renderer.Close(); err != nil {
		vista.Logger().Warn("host: close renderer", "err", err)
	}
	close(c.done)
	vista.Logger().Info("host: scene disposed", "released", released)
}

// Dispose disposes c. A nil context is ignored.
func Dispose(c *SceneContext) {
	c.Dispose()
}
