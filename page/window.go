package page

import "sync"

// Window is the viewport a page is displayed in. Its document-level mouse
// and touch events reach full-page scenes regardless of the pointer
// position.
type Window struct {
	mu         sync.Mutex
	size       Size
	pixelRatio float64

	resize listeners[func(Size)]
	mouse  listeners[func(Pointer)]
	touch  listeners[func([]Pointer)]
}

// NewWindow returns a window with the given viewport size and device pixel
// ratio. Ratios below or equal to zero become 1.
func NewWindow(size Size, pixelRatio float64) *Window {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	return &Window{size: size, pixelRatio: pixelRatio}
}

// Size returns the viewport size in CSS pixels.
func (w *Window) Size() Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// DevicePixelRatio returns device pixels per CSS pixel.
func (w *Window) DevicePixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pixelRatio
}

// SetDevicePixelRatio changes the ratio, for example when the window moves
// to another monitor.
func (w *Window) SetDevicePixelRatio(r float64) {
	if r <= 0 {
		r = 1
	}
	w.mu.Lock()
	w.pixelRatio = r
	w.mu.Unlock()
}

// OnResize registers a viewport resize listener.
func (w *Window) OnResize(fn func(Size)) Handle { return w.resize.add(fn) }

// OnMouseMove registers a document-level mouse move listener.
func (w *Window) OnMouseMove(fn func(Pointer)) Handle { return w.mouse.add(fn) }

// OnTouchMove registers a document-level touch move listener. It receives
// every active touch point.
func (w *Window) OnTouchMove(fn func([]Pointer)) Handle { return w.touch.add(fn) }

// ListenerCount returns the number of registered window listeners.
func (w *Window) ListenerCount() int {
	return w.resize.len() + w.mouse.len() + w.touch.len()
}

// SetSize changes the viewport size and notifies resize listeners.
func (w *Window) SetSize(s Size) {
	w.mu.Lock()
	changed := w.size != s
	w.size = s
	w.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range w.resize.snapshot() {
		fn(s)
	}
}

// DispatchMouseMove delivers a document-level mouse move.
func (w *Window) DispatchMouseMove(p Pointer) {
	for _, fn := range w.mouse.snapshot() {
		fn(p)
	}
}

// DispatchTouchMove delivers a document-level touch move.
func (w *Window) DispatchTouchMove(touches []Pointer) {
	for _, fn := range w.touch.snapshot() {
		fn(touches)
	}
}
