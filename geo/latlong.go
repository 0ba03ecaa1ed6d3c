package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LatLongToVector3 converts geographic coordinates in degrees to a point on
// a sphere of the given radius.
//
// The polar angle is measured from the +Y pole and longitude is offset by
// 180° so that texture u=0.5 (the prime meridian of an equirectangular map)
// faces +X after the sign flip on the first component. The result always has
// length |radius|.
func LatLongToVector3(lat, long, radius float64) mgl64.Vec3 {
	phi := (90 - lat) * (math.Pi / 180)
	theta := (long + 180) * (math.Pi / 180)

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)

	return mgl64.Vec3{
		-radius * sinPhi * cosTheta,
		radius * cosPhi,
		radius * sinPhi * sinTheta,
	}
}
