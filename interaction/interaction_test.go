package interaction

import (
	"math"
	"testing"

	"github.com/gogpu/vista/page"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRotationModeString(t *testing.T) {
	tests := []struct {
		m    RotationMode
		want string
	}{
		{Auto, "Auto"},
		{Interactive, "Interactive"},
		{RotationMode(9), "RotationMode(unknown)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestControllerNormalizesPointer(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 400, Height: 400})
	e.SetBounds(page.Rect{Left: 100, Top: 50, Width: 400, Height: 400})
	c := New(e, Sensitivity{Yaw: 1.5, Pitch: 0.8})
	c.Attach()
	defer c.Detach()

	tests := []struct {
		name   string
		p      page.Pointer
		x, y   float64
		tx, ty float64
	}{
		{"centre", page.Pointer{ClientX: 300, ClientY: 250}, 0, 0, 0, 0},
		{"top-left", page.Pointer{ClientX: 100, ClientY: 50}, -1, 1, 0.8, -1.5},
		{"bottom-right", page.Pointer{ClientX: 500, ClientY: 450}, 1, -1, -0.8, 1.5},
		{"right-edge middle", page.Pointer{ClientX: 500, ClientY: 250}, 1, 0, 0, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.DispatchPointerMove(tt.p)
			s := c.State()
			if !near(s.X, tt.x) || !near(s.Y, tt.y) {
				t.Errorf("pointer = (%v, %v), want (%v, %v)", s.X, s.Y, tt.x, tt.y)
			}
			if !near(s.TargetX, tt.tx) || !near(s.TargetY, tt.ty) {
				t.Errorf("target = (%v, %v), want (%v, %v)", s.TargetX, s.TargetY, tt.tx, tt.ty)
			}
		})
	}
}

func TestControllerModeSwitch(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 200, Height: 100})
	c := New(e, Sensitivity{Yaw: 1.5, Pitch: 0.8})
	if c.State().Mode != Auto {
		t.Fatalf("initial mode = %v, want Auto", c.State().Mode)
	}
	c.Attach()
	e.DispatchPointerEnter()
	if c.State().Mode != Interactive {
		t.Errorf("after enter = %v, want Interactive", c.State().Mode)
	}
	e.DispatchPointerLeave()
	if c.State().Mode != Auto {
		t.Errorf("after leave = %v, want Auto", c.State().Mode)
	}
}

func TestControllerIgnoresZeroBounds(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 100, Height: 100})
	c := New(e, Sensitivity{Yaw: 1, Pitch: 1})
	c.HandleMove(page.Pointer{ClientX: 100, ClientY: 0})
	before := c.State()

	e.SetSize(page.Size{})
	c.HandleMove(page.Pointer{ClientX: 0, ClientY: 100})
	if got := c.State(); got != before {
		t.Errorf("state changed on zero-size container: %+v -> %+v", before, got)
	}
	for _, v := range []float64{before.X, before.Y, before.TargetX, before.TargetY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite state %+v", before)
		}
	}
}

func TestControllerDetachRemovesOnlyItsListeners(t *testing.T) {
	e := page.NewElement(nil, page.Size{Width: 100, Height: 100})
	other := 0
	e.OnPointerEnter(func() { other++ })

	c := New(e, Sensitivity{Yaw: 1, Pitch: 1})
	c.Attach()
	c.Attach()
	if got := e.ListenerCount(); got != 4 {
		t.Fatalf("ListenerCount() = %d, want 4", got)
	}
	c.Detach()
	c.Detach()
	if got := e.ListenerCount(); got != 1 {
		t.Errorf("ListenerCount() after Detach = %d, want 1", got)
	}

	e.DispatchPointerEnter()
	if other != 1 {
		t.Errorf("unrelated listener calls = %d, want 1", other)
	}
	if c.State().Mode != Auto {
		t.Error("detached controller still receives events")
	}
}

func TestViewportController(t *testing.T) {
	w := page.NewWindow(page.Size{Width: 1000, Height: 600}, 1)
	v := NewViewport(w)
	v.Attach()
	defer v.Detach()

	w.DispatchMouseMove(page.Pointer{ClientX: 700, ClientY: 100})
	x, y := v.Pointer()
	if !near(x, 2) || !near(y, -2) {
		t.Fatalf("Pointer() = (%v, %v), want (2, -2)", x, y)
	}
	tx, ty := v.Target()
	if !near(tx, -0.3) || !near(ty, 0.3) {
		t.Errorf("Target() = (%v, %v), want (-0.3, 0.3)", tx, ty)
	}

	// Pinch gestures do not move the target.
	w.DispatchTouchMove([]page.Pointer{{ClientX: 0, ClientY: 0}, {ClientX: 10, ClientY: 10}})
	if x2, y2 := v.Pointer(); x2 != x || y2 != y {
		t.Errorf("multi-touch moved pointer to (%v, %v)", x2, y2)
	}

	w.DispatchTouchMove([]page.Pointer{{ClientX: 500, ClientY: 300}})
	if x, y := v.Pointer(); x != 0 || y != 0 {
		t.Errorf("single touch at centre = (%v, %v), want (0, 0)", x, y)
	}
}

func TestViewportFollowsWindowSize(t *testing.T) {
	w := page.NewWindow(page.Size{Width: 200, Height: 200}, 1)
	v := NewViewport(w)
	v.Attach()
	w.SetSize(page.Size{Width: 400, Height: 400})
	w.DispatchMouseMove(page.Pointer{ClientX: 200, ClientY: 200})
	if x, y := v.Pointer(); x != 0 || y != 0 {
		t.Errorf("Pointer() = (%v, %v), want centre after resize", x, y)
	}
	v.Detach()
	if w.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after Detach", w.ListenerCount())
	}
}
