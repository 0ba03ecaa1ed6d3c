package scene

import "github.com/go-gl/mathgl/mgl64"

// Euler is a rotation in radians applied in X, then Y, then Z intrinsic
// order (matrix Rx·Ry·Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix returns the homogeneous rotation matrix.
func (e Euler) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(e.X).
		Mul4(mgl64.HomogRotate3DY(e.Y)).
		Mul4(mgl64.HomogRotate3DZ(e.Z))
}

// Apply rotates v by e.
func (e Euler) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return e.Matrix().Mul4x1(v.Vec4(0)).Vec3()
}
