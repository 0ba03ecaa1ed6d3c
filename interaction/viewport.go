package interaction

import (
	"sync"

	"github.com/gogpu/vista/page"
)

const (
	// viewportDivisor converts pixels from the viewport centre to pointer
	// units.
	viewportDivisor = 100
	// ViewportScale converts pointer units to a target rotation.
	ViewportScale = 0.15
)

// ViewportController follows document-level mouse moves and single-touch
// moves relative to the viewport centre.
type ViewportController struct {
	window *page.Window

	mu      sync.Mutex
	x, y    float64
	handles []page.Handle
}

// NewViewport returns a controller for w. Call Attach to start listening.
func NewViewport(w *page.Window) *ViewportController {
	return &ViewportController{window: w}
}

// Attach registers the mouse and touch listeners. Attaching twice is a
// no-op.
func (v *ViewportController) Attach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.handles != nil {
		return
	}
	v.handles = []page.Handle{
		v.window.OnMouseMove(v.HandleMouseMove),
		v.window.OnTouchMove(v.HandleTouchMove),
	}
}

// Detach removes exactly the listeners Attach registered.
func (v *ViewportController) Detach() {
	v.mu.Lock()
	handles := v.handles
	v.handles = nil
	v.mu.Unlock()
	for _, h := range handles {
		h.Remove()
	}
}

// HandleMouseMove records a mouse position in client coordinates.
func (v *ViewportController) HandleMouseMove(p page.Pointer) {
	v.set(p)
}

// HandleTouchMove records the touch position when exactly one finger is
// down. Multi-touch gestures are ignored.
func (v *ViewportController) HandleTouchMove(touches []page.Pointer) {
	if len(touches) != 1 {
		return
	}
	v.set(touches[0])
}

func (v *ViewportController) set(p page.Pointer) {
	size := v.window.Size()
	x := (p.ClientX - float64(size.Width)/2) / viewportDivisor
	y := (p.ClientY - float64(size.Height)/2) / viewportDivisor
	v.mu.Lock()
	v.x, v.y = x, y
	v.mu.Unlock()
}

// Pointer returns the pointer offset from the viewport centre in units of
// 100 CSS pixels, y pointing down.
func (v *ViewportController) Pointer() (x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x, v.y
}

// Target returns the rotation the scene eases toward: TargetX about X from
// the vertical offset, TargetY about Y from the horizontal offset.
func (v *ViewportController) Target() (targetX, targetY float64) {
	x, y := v.Pointer()
	return y * ViewportScale, x * ViewportScale
}
