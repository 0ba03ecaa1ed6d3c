package scene

import "github.com/go-gl/mathgl/mgl64"

// PerspectiveCamera projects with a vertical field of view in degrees.
// After changing Fov, Aspect, Near or Far call UpdateProjectionMatrix.
type PerspectiveCamera struct {
	Node
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	projection mgl64.Mat4
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{Fov: fov, Aspect: aspect, Near: near, Far: far}
	c.init(c, "camera")
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from the current fields.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// Projection returns the matrix computed by the last UpdateProjectionMatrix.
func (c *PerspectiveCamera) Projection() mgl64.Mat4 { return c.projection }

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return c.WorldMatrix().Inv()
}
