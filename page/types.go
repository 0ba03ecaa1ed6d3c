package page

import "github.com/gogpu/gpucontext"

// Size is a layout size in CSS pixels.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Aspect returns Width/Height, or 1 for an invalid size.
func (s Size) Aspect() float64 {
	if !s.Valid() {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// Rect is a bounding box in client coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Pointer is a mouse or touch position in client coordinates.
type Pointer struct {
	ClientX, ClientY float64
}

// Surface is a drawable attached to a container, such as the render canvas.
type Surface interface {
	// PixelSize returns the backing store size in device pixels.
	PixelSize() (width, height int)
}

// Container is the element a scene renders into.
type Container interface {
	// Attached reports whether the element is part of a layout tree.
	Attached() bool
	Size() Size
	Bounds() Rect
	Window() *Window

	AppendSurface(s Surface) error
	RemoveSurface(s Surface) bool

	OnPointerMove(fn func(Pointer)) Handle
	OnPointerEnter(fn func()) Handle
	OnPointerLeave(fn func()) Handle
	// ObserveResize reports the element's new size whenever it changes.
	ObserveResize(fn func(Size)) Handle
}

// GPUContainer is implemented by containers backed by a GPU device.
type GPUContainer interface {
	Container
	DeviceProvider() gpucontext.DeviceProvider
}
