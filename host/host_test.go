package host

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/page"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

const frame = anim.DefaultFrameInterval

func newContext(t *testing.T, e page.Container, size page.Size, opts ...Option) (*SceneContext, *anim.ManualScheduler) {
	t.Helper()
	sched := anim.NewManualScheduler(epoch)
	c, err := Create(e, size, append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	t.Cleanup(c.Dispose)
	return c, sched
}

func TestCreateErrors(t *testing.T) {
	detached := page.NewElement(nil, page.Size{Width: 10, Height: 10})
	detached.Detach()

	tests := []struct {
		name      string
		container page.Container
		size      page.Size
		want      error
	}{
		{"nil container", nil, page.Size{Width: 10, Height: 10}, ErrContainerDetached},
		{"detached", detached, page.Size{Width: 10, Height: 10}, ErrContainerDetached},
		{"zero width", page.NewElement(nil, page.Size{}), page.Size{Width: 0, Height: 10}, ErrInvalidViewport},
		{"negative height", page.NewElement(nil, page.Size{}), page.Size{Width: 10, Height: -1}, ErrInvalidViewport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Create(tt.container, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("Create() returned a context with an error")
			}
		})
	}
	if len(detached.Surfaces()) != 0 {
		t.Error("surface attached to a detached container")
	}
}

func TestCreate400(t *testing.T) {
	win := page.NewWindow(page.Size{Width: 1280, Height: 720}, 3)
	e := page.NewElement(win, page.Size{Width: 400, Height: 400})
	c, _ := newContext(t, e, e.Size(), WithCameraZ(3))

	if c.Camera().Aspect != 1.0 {
		t.Errorf("aspect = %v, want 1", c.Camera().Aspect)
	}
	if c.Camera().Position.Z() != 3 || c.Camera().Fov != DefaultFOV {
		t.Errorf("camera z=%v fov=%v", c.Camera().Position.Z(), c.Camera().Fov)
	}
	if c.Renderer().PixelRatio() != 2 {
		t.Errorf("pixel ratio = %v, want capped 2", c.Renderer().PixelRatio())
	}
	if c.Renderer().ClearColor() != gg.Transparent {
		t.Error("clear colour is not transparent")
	}
	if s := e.Surfaces(); len(s) != 1 || s[0] != c.Renderer().Surface() {
		t.Errorf("surfaces = %v", s)
	}
}

func TestResizeAspect(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 400, Height: 400})
	c, _ := newContext(t, e, e.Size())
	for _, size := range []page.Size{{Width: 800, Height: 400}, {Width: 333, Height: 777}, {Width: 1, Height: 1000}, {Width: 1920, Height: 1080}} {
		c.Resize(size)
		if want := float64(size.Width) / float64(size.Height); c.Camera().Aspect != want {
			t.Errorf("%v: aspect = %v, want %v", size, c.Camera().Aspect, want)
		}
		if c.Renderer().Size() != size {
			t.Errorf("%v: renderer size = %v", size, c.Renderer().Size())
		}
	}
	c.Resize(page.Size{Width: 0, Height: 50})
	if c.Renderer().Size() != (page.Size{Width: 1920, Height: 1080}) {
		t.Error("zero-width resize was applied")
	}
}

func TestResizeObserverAppliedBeforeRender(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 400, Height: 400})
	c, sched := newContext(t, e, e.Size())
	var seen []float64
	c.OnUpdate(func(anim.Frame) { seen = append(seen, c.Camera().Aspect) })
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	e.SetSize(page.Size{Width: 800, Height: 400})
	if c.Camera().Aspect != 1 {
		t.Fatal("resize applied outside the loop")
	}
	sched.Advance(frame)
	if len(seen) != 1 || seen[0] != 2 {
		t.Errorf("aspect during frame = %v, want [2]", seen)
	}
	if w, h := c.Renderer().Surface().PixelSize(); w != 800 || h != 400 {
		t.Errorf("surface = %dx%d", w, h)
	}
}

func TestViewportResize(t *testing.T) {
	win := page.NewWindow(page.Size{Width: 1000, Height: 500}, 1)
	e := page.NewElement(win, page.Size{Width: 1000, Height: 500})
	c, sched := newContext(t, e, win.Size(), WithViewportResize(), WithFOV(75))
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	e.SetSize(page.Size{Width: 10, Height: 10})
	sched.Advance(frame)
	if c.Camera().Aspect != 2 {
		t.Errorf("container resize applied in viewport mode: aspect %v", c.Camera().Aspect)
	}
	win.SetSize(page.Size{Width: 600, Height: 600})
	sched.Advance(frame)
	if c.Camera().Aspect != 1 {
		t.Errorf("aspect = %v after window resize, want 1", c.Camera().Aspect)
	}
	if c.Camera().Fov != 75 {
		t.Errorf("Fov = %v", c.Camera().Fov)
	}
}

func TestDisposeOrder(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 64, Height: 64})
	c, sched := newContext(t, e, e.Size())

	mesh := scene.NewMesh("box", scene.NewBoxGeometry(1, 1, 1), shader.NewFloatingMaterial(gg.White))
	c.Scene().Add(mesh)
	extra := scene.NewTexture("pending", nil)
	c.Track(extra)

	pointer := e.OnPointerEnter(func() {})
	c.OnTeardown(pointer.Remove)

	var steps []string
	c.OnTeardown(func() {
		// Step 2 runs after the loop stopped and before anything is released
		// or detached.
		if sched.Pending() != 0 {
			t.Error("loop still scheduled during listener removal")
		}
		if mesh.Geometry.Disposed() {
			t.Error("resources released before listeners were removed")
		}
		if len(e.Surfaces()) != 1 {
			t.Error("surface detached before resources were released")
		}
		steps = append(steps, "listeners")
	})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	sched.Advance(frame)

	late := scene.NewTexture("late", nil)
	if !c.PostOrDrop(func() { t.Error("posted task ran after Dispose") }, late.Dispose) {
		t.Fatal("PostOrDrop() = false before Dispose")
	}

	c.Dispose()
	select {
	case <-c.Done():
	default:
		t.Fatal("Done() not closed after Dispose on an idle loop")
	}
	if !late.Disposed() {
		t.Error("queued task's texture not released on Dispose")
	}
	if len(steps) != 1 {
		t.Fatalf("teardown callbacks ran %d times", len(steps))
	}
	if !mesh.Geometry.Disposed() || !mesh.Material.Disposed() || !extra.Disposed() {
		t.Error("resources not released")
	}
	if e.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after Dispose", e.ListenerCount())
	}
	if len(e.Surfaces()) != 0 {
		t.Error("surface still attached")
	}
	if c.Context().Err() == nil {
		t.Error("context not cancelled")
	}

	// Idempotent: nothing runs twice.
	c.Dispose()
	Dispose(c)
	Dispose(nil)
	var nilCtx *SceneContext
	nilCtx.Dispose()
	nilCtx.Resize(page.Size{Width: 1, Height: 1})
	if len(steps) != 1 {
		t.Errorf("teardown callbacks ran %d times after repeated Dispose", len(steps))
	}
	if c.Post(func() {}) {
		t.Error("Post() accepted after Dispose")
	}
	if err := c.Start(); !errors.Is(err, anim.ErrStopped) {
		t.Errorf("Start() after Dispose = %v", err)
	}
	if sched.Advance(frame) != 0 {
		t.Error("frame ran after Dispose")
	}
}

func TestDisposeDuringFrame(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 32, Height: 32})
	c, sched := newContext(t, e, e.Size())
	c.OnUpdate(func(anim.Frame) {
		c.Dispose()
		// Disposed flips at once; teardown waits for the frame to return.
		if !c.Disposed() {
			t.Error("Disposed() = false after Dispose")
		}
		select {
		case <-c.Done():
			t.Error("Done() closed while the frame is still in flight")
		default:
		}
		if len(e.Surfaces()) != 1 {
			t.Error("surface detached while the frame is still in flight")
		}
	})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	sched.Advance(frame)

	if c.Renderer().Stats().Frames != 1 {
		t.Errorf("Frames = %d, want the in-flight frame rendered", c.Renderer().Stats().Frames)
	}
	select {
	case <-c.Done():
	default:
		t.Fatal("teardown did not complete after the frame")
	}
	if len(e.Surfaces()) != 0 {
		t.Error("surface still attached")
	}
}

func TestContextsIndependent(t *testing.T) {
	ea := page.NewElement(nil, page.Size{Width: 32, Height: 32})
	eb := page.NewElement(nil, page.Size{Width: 32, Height: 32})
	a, sa := newContext(t, ea, ea.Size())
	b, sb := newContext(t, eb, eb.Size())

	meshB := scene.NewMesh("b", scene.NewBoxGeometry(1, 1, 1), shader.NewFloatingMaterial(gg.White))
	b.Scene().Add(meshB)
	ticksB := 0
	b.OnUpdate(func(anim.Frame) { ticksB++ })
	for _, c := range []*SceneContext{a, b} {
		if err := c.Start(); err != nil {
			t.Fatal(err)
		}
	}

	a.Dispose()
	sa.Advance(frame)
	sb.Step(3, frame)

	if ticksB != 3 {
		t.Errorf("b ticks = %d, want 3", ticksB)
	}
	if meshB.Geometry.Disposed() || b.Disposed() {
		t.Error("disposing a affected b")
	}
	if len(eb.Surfaces()) != 1 {
		t.Error("b's surface detached")
	}
}

func TestPostMarksShadersDirty(t *testing.T) {
	dev := &fakeDevice{}
	e := page.NewElement(nil, page.Size{Width: 32, Height: 32})
	c, sched := newContext(t, e, e.Size(), WithShaderDevice(dev))
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	sched.Advance(frame)

	mat := shader.NewFloatingMaterial(gg.White)
	c.Post(func() {
		c.Scene().Add(scene.NewMesh("late", scene.NewBoxGeometry(1, 1, 1), mat))
	})
	sched.Advance(frame)
	if len(dev.created) == 0 {
		t.Skip("WGSL compiler unavailable for this program")
	}
	if mat.GPU() == nil {
		t.Fatal("material added by a posted task was not bound")
	}

	c.Dispose()
	if dev.destroyed != len(dev.created) {
		t.Errorf("destroyed %d of %d modules", dev.destroyed, len(dev.created))
	}
}

type fakeModule struct {
	hal.ShaderModule
}

type fakeDevice struct {
	created   []string
	destroyed int
}

func (d *fakeDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	d.created = append(d.created, desc.Label)
	return &fakeModule{}, nil
}

func (d *fakeDevice) DestroyShaderModule(hal.ShaderModule) { d.destroyed++ }
