package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is CPU-side vertex data. Triangle meshes fill Indices; point
// clouds leave it empty and may carry a per-vertex Scales attribute.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
	Scales    []float64

	kind     string
	disposed bool
}

// Kind names the generator that produced the geometry ("sphere", "ring", ...).
func (g *Geometry) Kind() string { return g.kind }

// Triangles returns the number of indexed triangles.
func (g *Geometry) Triangles() int { return len(g.Indices) / 3 }

// Dispose drops the vertex data. Calling it again is a no-op.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.Positions, g.Normals, g.UVs, g.Indices, g.Scales = nil, nil, nil, nil, nil
}

// Disposed reports whether Dispose has run.
func (g *Geometry) Disposed() bool { return g.disposed }

// NewSphereGeometry builds a UV sphere centred on the origin.
// Longitude runs around +Y with u increasing eastwards; v is 1 at the
// north pole so equirectangular images map without flipping.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := &Geometry{kind: "sphere"}
	grid := make([][]uint32, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			n := mgl64.Vec3{-cosPhi * sinTheta, cosTheta, sinPhi * sinTheta}
			g.Positions = append(g.Positions, n.Mul(radius))
			g.Normals = append(g.Normals, n)
			g.UVs = append(g.UVs, mgl64.Vec2{u, 1 - v})

			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// NewRingGeometry builds a flat annulus in the XY plane facing +Z.
func NewRingGeometry(innerRadius, outerRadius float64, segments int) *Geometry {
	segments = max(segments, 3)

	g := &Geometry{kind: "ring"}
	radii := [2]float64{innerRadius, outerRadius}
	for _, r := range radii {
		for i := 0; i <= segments; i++ {
			angle := float64(i) / float64(segments) * 2 * math.Pi
			sin, cos := math.Sincos(angle)
			p := mgl64.Vec3{r * cos, r * sin, 0}
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, mgl64.Vec3{0, 0, 1})
			g.UVs = append(g.UVs, mgl64.Vec2{(p.X()/outerRadius + 1) / 2, (p.Y()/outerRadius + 1) / 2})
		}
	}

	stride := uint32(segments + 1)
	for i := uint32(0); i < uint32(segments); i++ {
		a := i
		b := i + stride
		c := i + stride + 1
		d := i + 1
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}
	return g
}

// NewBoxGeometry builds an axis-aligned box with per-face normals and UVs.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	g := &Geometry{kind: "box"}
	hw, hh, hd := width/2, height/2, depth/2

	faces := []struct {
		normal, u, v mgl64.Vec3
		du, dv, dn   float64
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}, hd, hh, hw},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, hd, hh, hw},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, hw, hd, hh},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}, hw, hd, hh},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, hw, hh, hd},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}, hw, hh, hd},
	}
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range faces {
		base := uint32(len(g.Positions))
		centre := f.normal.Mul(f.dn)
		for _, c := range corners {
			p := centre.Add(f.u.Mul(c[0] * f.du)).Add(f.v.Mul(c[1] * f.dv))
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, f.normal)
			g.UVs = append(g.UVs, mgl64.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewPointsGeometry wraps a point cloud. scales may be nil, in which case
// every point gets size 1.
func NewPointsGeometry(positions []mgl64.Vec3, scales []float64) *Geometry {
	if scales == nil {
		scales = make([]float64, len(positions))
		for i := range scales {
			scales[i] = 1
		}
	}
	return &Geometry{kind: "points", Positions: positions, Scales: scales}
}
