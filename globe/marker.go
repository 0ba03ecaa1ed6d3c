package globe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/vista/geo"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

// Marker geometry. Radii are in globe radii.
const (
	MarkerAltitude    = 1.02
	LabelDistance     = 1.3
	pointRadius       = 0.03
	ringInner         = 0.05
	ringOuter         = 0.08
	ringSpeed         = 2
	outerRingInner    = 0.10
	outerRingOuter    = 0.12
	outerRingSpeed    = 1.5
	outerRingPhase    = 1
	outerRingAlpha    = 0.7
	ringSegments      = 32
	pointSegments     = 16
	labelSpriteWidth  = 0.5
	labelSpriteHeight = 0.25
)

// MarkerOptions places and captions the highlighted location.
type MarkerOptions struct {
	Lat, Long float64
	Title     string
	Subtitle  string
	Color     gg.RGBA
}

// Marker is the highlighted location: a pulsing point, two pulsing rings
// facing away from the globe centre and a caption billboard.
type Marker struct {
	// Position is the marker location in globe space.
	Position mgl64.Vec3

	Point     *scene.Mesh
	Ring      *scene.Mesh
	OuterRing *scene.Mesh
	Label     *scene.Sprite
}

// NewMarker builds the marker. The caption is rasterized here, once; a
// caption that cannot be rendered leaves Label nil and returns the error
// alongside a usable marker.
func NewMarker(opts MarkerOptions) (*Marker, error) {
	pos := geo.LatLongToVector3(opts.Lat, opts.Long, MarkerAltitude)
	m := &Marker{Position: pos}

	m.Point = scene.NewMesh("marker-point",
		scene.NewSphereGeometry(pointRadius, pointSegments, pointSegments),
		shader.NewMarkerMaterial(opts.Color))
	m.Point.Position = pos

	m.Ring = newRing("marker-ring", pos, ringInner, ringOuter,
		shader.NewRingMaterial(opts.Color, ringSpeed, 0, 1))
	m.OuterRing = newRing("marker-outer-ring", pos, outerRingInner, outerRingOuter,
		shader.NewRingMaterial(opts.Color, outerRingSpeed, outerRingPhase, outerRingAlpha))

	img, err := RenderLabel(opts.Title, opts.Subtitle)
	if err != nil {
		return m, err
	}
	mat := scene.NewSpriteMaterial(scene.NewTexture("marker-label", img))
	mat.DepthTest = false
	m.Label = scene.NewSprite("marker-label", mat)
	m.Label.Scale = mgl64.Vec3{labelSpriteWidth, labelSpriteHeight, 1}
	m.Label.Position = pos.Mul(LabelDistance)
	return m, nil
}

func newRing(name string, pos mgl64.Vec3, inner, outer float64, mat *scene.ShaderMaterial) *scene.Mesh {
	ring := scene.NewMesh(name, scene.NewRingGeometry(inner, outer, ringSegments), mat)
	ring.Position = pos
	// The ring lies in its local XY plane; pointing +Z at the centre makes
	// it tangent to the sphere.
	ring.LookAt(mgl64.Vec3{})
	return ring
}

// Objects returns the marker's scene objects in draw order.
func (m *Marker) Objects() []scene.Object {
	objs := []scene.Object{m.Point, m.Ring, m.OuterRing}
	if m.Label != nil {
		objs = append(objs, m.Label)
	}
	return objs
}
