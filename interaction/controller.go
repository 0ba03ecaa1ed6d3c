// Package interaction turns pointer input into target rotations that the
// frame loop eases toward.
//
// Controller follows the pointer inside one container and switches between
// automatic and interactive rotation on enter and leave. ViewportController
// follows the mouse or a single touch anywhere in the window, for scenes
// that fill the page. Event handlers run on the host's event goroutine;
// State is read from the frame loop. Both sides are guarded by a mutex.
package interaction

import (
	"sync"

	"github.com/gogpu/vista/page"
)

// RotationMode selects how the frame loop rotates a scene.
type RotationMode uint8

const (
	// Auto adds a constant angular increment every frame.
	Auto RotationMode = iota
	// Interactive eases the rotation toward the pointer target.
	Interactive
)

// String returns the mode name.
func (m RotationMode) String() string {
	switch m {
	case Auto:
		return "Auto"
	case Interactive:
		return "Interactive"
	default:
		return "RotationMode(unknown)"
	}
}

// Sensitivity scales the normalized pointer position into radians.
type Sensitivity struct {
	// Yaw is applied to the horizontal axis and drives rotation about Y.
	Yaw float64
	// Pitch is applied to the vertical axis and drives rotation about X.
	Pitch float64
}

// PointerState is the latest pointer sample and the rotation it asks for.
type PointerState struct {
	// X and Y are in [-1, 1] across the container, Y pointing up.
	X, Y float64
	// TargetX is the requested rotation about X (pitch).
	TargetX float64
	// TargetY is the requested rotation about Y (yaw).
	TargetY float64
	Mode    RotationMode
}

// Controller maps pointer input over one container to a target rotation.
type Controller struct {
	container page.Container
	sens      Sensitivity

	mu      sync.Mutex
	state   PointerState
	handles []page.Handle
}

// New returns a controller in Auto mode. Call Attach to start listening.
func New(container page.Container, sens Sensitivity) *Controller {
	return &Controller{container: container, sens: sens}
}

// Attach registers the pointer listeners on the container. Attaching an
// already attached controller is a no-op.
func (c *Controller) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handles != nil {
		return
	}
	c.handles = []page.Handle{
		c.container.OnPointerMove(c.HandleMove),
		c.container.OnPointerEnter(c.HandleEnter),
		c.container.OnPointerLeave(c.HandleLeave),
	}
}

// Detach removes exactly the listeners Attach registered.
// Calling it again is a no-op.
func (c *Controller) Detach() {
	c.mu.Lock()
	handles := c.handles
	c.handles = nil
	c.mu.Unlock()
	for _, h := range handles {
		h.Remove()
	}
}

// HandleMove records a pointer position given in client coordinates.
// Moves over a zero-sized container are ignored.
func (c *Controller) HandleMove(p page.Pointer) {
	r := c.container.Bounds()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x := (p.ClientX-r.Left)/r.Width*2 - 1
	y := -(p.ClientY-r.Top)/r.Height*2 + 1

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.X, c.state.Y = x, y
	c.state.TargetY = x * c.sens.Yaw
	c.state.TargetX = y * c.sens.Pitch
}

// HandleEnter switches to interactive rotation.
func (c *Controller) HandleEnter() {
	c.mu.Lock()
	c.state.Mode = Interactive
	c.mu.Unlock()
}

// HandleLeave switches back to automatic rotation immediately.
func (c *Controller) HandleLeave() {
	c.mu.Lock()
	c.state.Mode = Auto
	c.mu.Unlock()
}

// State returns a snapshot of the pointer state.
func (c *Controller) State() PointerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
