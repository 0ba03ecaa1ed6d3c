package render

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/vista/scene"
)

type itemKind uint8

const (
	kindTriangle itemKind = iota
	kindPoint
	kindSprite
)

// pointStops is how many radial samples a point's fragment program is
// evaluated at to build its gradient.
const pointStops = 6

// item is one shaded primitive waiting to be painted.
type item struct {
	kind     itemKind
	depth    float64 // view-space z, more negative is farther
	additive bool

	// triangle
	tri   [3]mgl64.Vec2
	color gg.RGBA

	// point
	centre mgl64.Vec2
	radius float64
	stops  [pointStops]gg.RGBA

	// sprite
	buf     *gg.ImageBuf
	rect    [4]float64 // x, y, w, h
	opacity float64
}

// frame collects draw items for one Render call.
type frame struct {
	view, proj    mgl64.Mat4
	near          float64
	width, height float64
	minPoint      float64
	sprite        func(*scene.Texture) *gg.ImageBuf

	items []item

	// scratch per mesh
	viewPos []mgl64.Vec3
	screen  []mgl64.Vec2
	normals []mgl64.Vec3

	triangles, points, spriteCount, culled int
}

func newFrame(cam *scene.PerspectiveCamera, width, height, minPoint float64) *frame {
	return &frame{
		view:     cam.ViewMatrix(),
		proj:     cam.Projection(),
		near:     cam.Near,
		width:    width,
		height:   height,
		minPoint: minPoint,
	}
}

// collect walks the visible part of the graph.
func (f *frame) collect(o scene.Object) {
	n := o.Base()
	if !n.Visible {
		return
	}
	switch v := o.(type) {
	case *scene.Mesh:
		f.mesh(v)
	case *scene.Points:
		f.pointCloud(v)
	case *scene.Sprite:
		f.billboard(v)
	}
	for _, c := range n.Children() {
		f.collect(c)
	}
}

// toScreen projects a view-space position to device pixels.
func (f *frame) toScreen(p mgl64.Vec3) mgl64.Vec2 {
	clip := f.proj.Mul4x1(p.Vec4(1))
	w := clip.W()
	x := clip.X() / w
	y := clip.Y() / w
	return mgl64.Vec2{(x + 1) / 2 * f.width, (1 - y) / 2 * f.height}
}

func shaderOf(m scene.Material) *scene.ShaderMaterial {
	sm, _ := m.(*scene.ShaderMaterial)
	if sm == nil || sm.Disposed() {
		return nil
	}
	return sm
}

func (f *frame) mesh(m *scene.Mesh) {
	g := m.Geometry
	mat := shaderOf(m.Material)
	if g == nil || g.Disposed() || mat == nil || len(g.Indices) == 0 {
		return
	}
	mv := f.view.Mul4(m.WorldMatrix())
	normalMat := mv.Mat3().Inv().Transpose()
	u := mat.Uniforms()
	prog := mat.Program

	f.viewPos = f.viewPos[:0]
	f.screen = f.screen[:0]
	f.normals = f.normals[:0]
	for i, p := range g.Positions {
		if prog.Vertex != nil {
			p = prog.Vertex(u, p)
		}
		vp := mv.Mul4x1(p.Vec4(1)).Vec3()
		f.viewPos = append(f.viewPos, vp)
		f.screen = append(f.screen, f.toScreen(vp))
		var n mgl64.Vec3
		if i < len(g.Normals) {
			n = normalMat.Mul3x1(g.Normals[i])
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		f.normals = append(f.normals, n)
	}

	for t := 0; t+2 < len(g.Indices); t += 3 {
		ia, ib, ic := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		va, vb, vc := f.viewPos[ia], f.viewPos[ib], f.viewPos[ic]
		if va.Z() > -f.near || vb.Z() > -f.near || vc.Z() > -f.near {
			f.culled++
			continue
		}
		a, b, c := f.screen[ia], f.screen[ib], f.screen[ic]
		area := (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
		if area == 0 || !faceVisible(mat.Side, area < 0) || f.offscreen(a, b, c) {
			f.culled++
			continue
		}

		frag := scene.Fragment{}
		if len(g.UVs) == len(g.Positions) {
			frag.UV = g.UVs[ia].Add(g.UVs[ib]).Add(g.UVs[ic]).Mul(1.0 / 3)
		}
		if n := f.normals[ia].Add(f.normals[ib]).Add(f.normals[ic]); n.Len() > 0 {
			frag.Normal = n.Normalize()
		}
		frag.Position = g.Positions[ia].Add(g.Positions[ib]).Add(g.Positions[ic]).Mul(1.0 / 3)

		color := gg.White
		if prog.Fragment != nil {
			var keep bool
			if color, keep = prog.Fragment(u, frag); !keep {
				continue
			}
		}
		if color.A <= 0 {
			continue
		}
		f.items = append(f.items, item{
			kind:     kindTriangle,
			depth:    (va.Z() + vb.Z() + vc.Z()) / 3,
			additive: mat.Blending == scene.AdditiveBlending,
			tri:      [3]mgl64.Vec2{a, b, c},
			color:    color,
		})
		f.triangles++
	}
}

// faceVisible applies the material side to a triangle whose screen winding
// is front-facing when front is true. Screen y grows downward, so
// counter-clockwise triangles have negative area there.
func faceVisible(side scene.Side, front bool) bool {
	switch side {
	case scene.BackSide:
		return !front
	case scene.DoubleSide:
		return true
	default:
		return front
	}
}

func (f *frame) offscreen(pts ...mgl64.Vec2) bool {
	left, right, above, below := true, true, true, true
	for _, p := range pts {
		left = left && p.X() < 0
		right = right && p.X() > f.width
		above = above && p.Y() < 0
		below = below && p.Y() > f.height
	}
	return left || right || above || below
}

func (f *frame) pointCloud(p *scene.Points) {
	g := p.Geometry
	mat := shaderOf(p.Material)
	if g == nil || g.Disposed() || mat == nil {
		return
	}
	mv := f.view.Mul4(p.WorldMatrix())
	u := mat.Uniforms()
	prog := mat.Program

	for i, pos := range g.Positions {
		moved := pos
		if prog.Vertex != nil {
			moved = prog.Vertex(u, pos)
		}
		vp := mv.Mul4x1(moved.Vec4(1)).Vec3()
		if vp.Z() > -f.near {
			f.culled++
			continue
		}
		scale := 1.0
		if i < len(g.Scales) {
			scale = g.Scales[i]
		}
		size := f.minPoint
		if prog.PointSize != nil {
			size = max(prog.PointSize(scale, vp.Z()), f.minPoint)
		}
		centre := f.toScreen(vp)
		r := size / 2
		if centre.X()+r < 0 || centre.X()-r > f.width || centre.Y()+r < 0 || centre.Y()-r > f.height {
			f.culled++
			continue
		}

		it := item{
			kind:     kindPoint,
			depth:    vp.Z(),
			additive: mat.Blending == scene.AdditiveBlending,
			centre:   centre,
			radius:   r,
		}
		visible := false
		for s := range pointStops {
			frag := scene.Fragment{
				Position:   pos,
				PointCoord: 0.5 * float64(s) / (pointStops - 1),
			}
			c := gg.White
			if prog.Fragment != nil {
				var keep bool
				if c, keep = prog.Fragment(u, frag); !keep {
					c = gg.Transparent
				}
			}
			it.stops[s] = c
			visible = visible || c.A > 0
		}
		if !visible {
			continue
		}
		f.items = append(f.items, it)
		f.points++
	}
}

func (f *frame) billboard(s *scene.Sprite) {
	m := s.Material
	if m == nil || m.Disposed() || m.Map == nil || m.Opacity <= 0 {
		return
	}
	vp := f.view.Mul4(s.WorldMatrix()).Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	if vp.Z() > -f.near {
		f.culled++
		return
	}
	buf := f.sprite(m.Map)
	if buf == nil {
		return
	}
	centre := f.toScreen(vp)
	w := s.Scale.X() * f.proj.At(0, 0) / -vp.Z() * f.width / 2
	h := s.Scale.Y() * f.proj.At(1, 1) / -vp.Z() * f.height / 2
	depth := vp.Z()
	if !m.DepthTest {
		// Painted over everything else.
		depth = 0
	}
	f.items = append(f.items, item{
		kind:    kindSprite,
		depth:   depth,
		buf:     buf,
		rect:    [4]float64{centre.X() - w/2, centre.Y() - h/2, w, h},
		opacity: min(m.Opacity, 1),
	})
	f.spriteCount++
}

// draw paints the collected items far to near. Consecutive additive items
// share one screen-blended layer.
func (f *frame) draw(dc *gg.Context) {
	slices.SortStableFunc(f.items, func(a, b item) int {
		return cmp.Compare(a.depth, b.depth)
	})

	inLayer := false
	for i := range f.items {
		it := &f.items[i]
		if it.additive != inLayer {
			if inLayer {
				dc.PopLayer()
			} else {
				dc.PushLayer(gg.BlendScreen, 1)
			}
			inLayer = it.additive
		}
		switch it.kind {
		case kindTriangle:
			c := it.color
			dc.SetRGBA(c.R, c.G, c.B, c.A)
			dc.MoveTo(it.tri[0].X(), it.tri[0].Y())
			dc.LineTo(it.tri[1].X(), it.tri[1].Y())
			dc.LineTo(it.tri[2].X(), it.tri[2].Y())
			dc.ClosePath()
			_ = dc.Fill()
		case kindPoint:
			drawPoint(dc, it)
		case kindSprite:
			dc.DrawImageEx(it.buf, gg.DrawImageOptions{
				X:         it.rect[0],
				Y:         it.rect[1],
				DstWidth:  it.rect[2],
				DstHeight: it.rect[3],
				Opacity:   it.opacity,
			})
		}
	}
	if inLayer {
		dc.PopLayer()
	}
}

func drawPoint(dc *gg.Context, it *item) {
	x, y, r := it.centre.X(), it.centre.Y(), it.radius
	if r < 1.5 {
		c := it.stops[0]
		dc.SetRGBA(c.R, c.G, c.B, c.A)
	} else {
		brush := gg.NewRadialGradientBrush(x, y, 0, r)
		for s, c := range it.stops {
			brush.AddColorStop(float64(s)/(pointStops-1), c)
		}
		dc.SetFillBrush(brush)
	}
	dc.DrawCircle(x, y, r)
	_ = dc.Fill()
}
