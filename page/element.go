package page

import (
	"errors"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"
)

var (
	// ErrDetached is returned when a surface is appended to an element that
	// is not in a layout tree.
	ErrDetached = errors.New("page: element is not attached")

	// ErrNilSurface is returned by AppendSurface for a nil surface.
	ErrNilSurface = errors.New("page: nil surface")
)

// Element is an in-memory Container.
type Element struct {
	mu       sync.Mutex
	window   *Window
	bounds   Rect
	attached bool
	surfaces []Surface
	provider gpucontext.DeviceProvider

	move   listeners[func(Pointer)]
	enter  listeners[func()]
	leave  listeners[func()]
	resize listeners[func(Size)]
}

// NewElement returns an attached element of the given size at the window
// origin. A nil window gets a default one sized to the element.
func NewElement(w *Window, size Size) *Element {
	if w == nil {
		w = NewWindow(size, 1)
	}
	return &Element{
		window:   w,
		bounds:   Rect{Width: float64(size.Width), Height: float64(size.Height)},
		attached: true,
	}
}

// WithDeviceProvider sets the GPU device the element's surfaces render with.
func (e *Element) WithDeviceProvider(p gpucontext.DeviceProvider) *Element {
	e.mu.Lock()
	e.provider = p
	e.mu.Unlock()
	return e
}

// DeviceProvider returns the GPU device provider, or nil for headless
// elements.
func (e *Element) DeviceProvider() gpucontext.DeviceProvider {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.provider
}

// Attached reports whether the element is part of the layout tree.
func (e *Element) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attached
}

// Size returns the element's layout size in CSS pixels.
func (e *Element) Size() Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Size{Width: int(e.bounds.Width), Height: int(e.bounds.Height)}
}

// Bounds returns the element's client rectangle.
func (e *Element) Bounds() Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

// Window returns the window the element lives in.
func (e *Element) Window() *Window { return e.window }

// AppendSurface attaches s as the element's last child.
func (e *Element) AppendSurface(s Surface) error {
	if s == nil {
		return ErrNilSurface
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return ErrDetached
	}
	e.surfaces = append(e.surfaces, s)
	return nil
}

// RemoveSurface detaches s and reports whether it was attached.
func (e *Element) RemoveSurface(s Surface) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.Index(e.surfaces, s)
	if i < 0 {
		return false
	}
	e.surfaces = slices.Delete(e.surfaces, i, i+1)
	return true
}

// Surfaces returns the attached surfaces in order.
func (e *Element) Surfaces() []Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.surfaces)
}

// OnPointerMove registers fn for pointer moves over the element.
func (e *Element) OnPointerMove(fn func(Pointer)) Handle { return e.move.add(fn) }

// OnPointerEnter registers fn for the pointer entering the element.
func (e *Element) OnPointerEnter(fn func()) Handle { return e.enter.add(fn) }

// OnPointerLeave registers fn for the pointer leaving the element.
func (e *Element) OnPointerLeave(fn func()) Handle { return e.leave.add(fn) }

// ObserveResize registers fn for changes of the element's size.
func (e *Element) ObserveResize(fn func(Size)) Handle { return e.resize.add(fn) }

// ListenerCount returns the number of registered pointer and resize
// listeners.
func (e *Element) ListenerCount() int {
	return e.move.len() + e.enter.len() + e.leave.len() + e.resize.len()
}

// Detach removes the element from the layout tree.
func (e *Element) Detach() {
	e.mu.Lock()
	e.attached = false
	e.mu.Unlock()
}

// Attach puts the element back into the layout tree.
func (e *Element) Attach() {
	e.mu.Lock()
	e.attached = true
	e.mu.Unlock()
}

// SetBounds moves or resizes the element. Resize observers run when the
// size changes.
func (e *Element) SetBounds(r Rect) {
	e.mu.Lock()
	old := e.bounds
	e.bounds = r
	e.mu.Unlock()

	if old.Width == r.Width && old.Height == r.Height {
		return
	}
	size := Size{Width: int(r.Width), Height: int(r.Height)}
	for _, fn := range e.resize.snapshot() {
		fn(size)
	}
}

// SetSize resizes the element in place.
func (e *Element) SetSize(s Size) {
	r := e.Bounds()
	r.Width, r.Height = float64(s.Width), float64(s.Height)
	e.SetBounds(r)
}

// DispatchPointerMove delivers a pointer move in client coordinates.
func (e *Element) DispatchPointerMove(p Pointer) {
	for _, fn := range e.move.snapshot() {
		fn(p)
	}
}

// DispatchPointerEnter delivers a pointer enter.
func (e *Element) DispatchPointerEnter() {
	for _, fn := range e.enter.snapshot() {
		fn()
	}
}

// DispatchPointerLeave delivers a pointer leave.
func (e *Element) DispatchPointerLeave() {
	for _, fn := range e.leave.snapshot() {
		fn()
	}
}
