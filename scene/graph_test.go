package scene

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

const eps = 1e-9

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}

func TestNodeAddReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGroup("child")

	a.Add(child)
	if child.Parent() != &a.Node {
		t.Fatal("child not parented to a")
	}
	b.Add(child)
	if child.Parent() != &b.Node {
		t.Fatal("child not re-parented to b")
	}
	if len(a.Children()) != 0 {
		t.Errorf("a still has %d children after re-parent", len(a.Children()))
	}
	if !b.Remove(child) {
		t.Error("Remove() = false for a direct child")
	}
	if b.Remove(child) {
		t.Error("Remove() = true for a detached child")
	}
	if child.Parent() != nil {
		t.Error("removed child still has a parent")
	}
}

func TestTraverseOrder(t *testing.T) {
	root := NewScene()
	g := NewGroup("g")
	m1 := NewMesh("m1", NewBoxGeometry(1, 1, 1), nil)
	m2 := NewMesh("m2", NewBoxGeometry(1, 1, 1), nil)
	g.Add(m1)
	root.Add(g, m2)

	var names []string
	root.Traverse(func(o Object) { names = append(names, o.Base().Name) })

	want := []string{"scene", "g", "m1", "m2"}
	if len(names) != len(want) {
		t.Fatalf("Traverse visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Traverse visited %v, want %v", names, want)
		}
	}
	if root.Find("m1") != m1 {
		t.Error("Find(m1) did not return the mesh")
	}
	if root.Find("missing") != nil {
		t.Error("Find(missing) != nil")
	}
}

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = mgl64.Vec3{1, 0, 0}
	parent.Rotation.Y = math.Pi / 2

	child := NewGroup("child")
	child.Position = mgl64.Vec3{0, 0, 1}
	parent.Add(child)

	// Rotating +Z by 90° about Y gives +X; then translate by the parent.
	got := child.WorldPosition()
	if !vecNear(got, mgl64.Vec3{2, 0, 0}) {
		t.Errorf("WorldPosition() = %v, want (2, 0, 0)", got)
	}
}

func TestLookAtFacesTarget(t *testing.T) {
	n := NewGroup("ring")
	n.Position = mgl64.Vec3{0, 0.5, 0.5}
	n.LookAt(mgl64.Vec3{})

	forward := n.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
	want := mgl64.Vec3{0, -0.5, -0.5}.Normalize()
	if !vecNear(forward, want) {
		t.Errorf("local +Z maps to %v, want %v", forward, want)
	}

	before := n.Orientation
	n.Position = mgl64.Vec3{}
	n.LookAt(mgl64.Vec3{}) // degenerate: keep orientation
	if n.Orientation != before {
		t.Error("LookAt at own position changed orientation")
	}
}

func TestEulerApply(t *testing.T) {
	e := Euler{Y: math.Pi / 2}
	got := e.Apply(mgl64.Vec3{1, 0, 0})
	if !vecNear(got, mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Apply() = %v, want (0, 0, -1)", got)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewPerspectiveCamera(45, 1, 0.1, 1000)
	c.Position = mgl64.Vec3{0, 0, 3}

	// The origin projects to the centre of clip space.
	clip := c.Projection().Mul4(c.ViewMatrix()).Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math.Abs(ndc.X()) > eps || math.Abs(ndc.Y()) > eps {
		t.Errorf("origin projects to %v, want centre", ndc)
	}

	c.Aspect = 2
	c.UpdateProjectionMatrix()
	p := c.Projection()
	if math.Abs(p.At(1, 1)/p.At(0, 0)-2) > eps {
		t.Errorf("projection x/y scale ratio = %v, want aspect 2", p.At(1, 1)/p.At(0, 0))
	}
}

func TestUniforms(t *testing.T) {
	tex := NewTexture("earth", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	u := NewUniforms().
		Set(TimeUniform, 0.0).
		Set("glowColor", gg.Hex("#0099ff")).
		Set("earthTexture", tex)

	u.SetTime(1.25)
	if got := u.Float(TimeUniform); got != 1.25 {
		t.Errorf("time = %v, want 1.25", got)
	}
	if got := u.Color("glowColor"); got != gg.Hex("#0099ff") {
		t.Errorf("glowColor = %v", got)
	}
	if u.Texture("earthTexture") != tex {
		t.Error("Texture(earthTexture) mismatch")
	}
	if u.Texture("glowColor") != nil {
		t.Error("Texture() of a colour uniform should be nil")
	}
	if got := u.Textures(); len(got) != 1 || got[0] != tex {
		t.Errorf("Textures() = %v, want [earth]", got)
	}

	noTime := NewUniforms().Set("color", gg.White)
	noTime.SetTime(3)
	if noTime.Has(TimeUniform) {
		t.Error("SetTime declared a time entry on a set without one")
	}
}

func TestTextureSample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255}) // top-left
	img.Set(1, 1, color.RGBA{0, 0, 255, 255}) // bottom-right
	tex := NewTexture("t", img)

	if c := tex.Sample(mgl64.Vec2{0.1, 0.9}); c.R != 1 || c.B != 0 {
		t.Errorf("Sample(top-left) = %+v, want red", c)
	}
	if c := tex.Sample(mgl64.Vec2{0.9, 0.1}); c.B != 1 || c.R != 0 {
		t.Errorf("Sample(bottom-right) = %+v, want blue", c)
	}
	// U wraps.
	if a, b := tex.Sample(mgl64.Vec2{1.1, 0.9}), tex.Sample(mgl64.Vec2{0.1, 0.9}); a != b {
		t.Errorf("wrapped sample %+v != %+v", a, b)
	}

	tex.Dispose()
	tex.Dispose()
	if !tex.Disposed() {
		t.Fatal("Disposed() = false after Dispose")
	}
	if c := tex.Sample(mgl64.Vec2{0.1, 0.9}); c != gg.Transparent {
		t.Errorf("Sample after Dispose = %+v, want transparent", c)
	}
	if w, h := tex.Size(); w != 0 || h != 0 {
		t.Errorf("Size after Dispose = %dx%d", w, h)
	}
}

type countingReleaser struct{ n int }

func (c *countingReleaser) Release() { c.n++ }

func TestShaderMaterialDisposeReleasesGPUOnce(t *testing.T) {
	m := NewShaderMaterial(Program{Name: "p"}, nil)
	first := &countingReleaser{}
	second := &countingReleaser{}

	m.BindGPU(first)
	m.BindGPU(second) // replaces and releases first
	if first.n != 1 {
		t.Errorf("replaced program released %d times, want 1", first.n)
	}

	m.Dispose()
	m.Dispose()
	if second.n != 1 {
		t.Errorf("bound program released %d times, want 1", second.n)
	}
	if m.GPU() != nil {
		t.Error("GPU() != nil after Dispose")
	}
}

func TestResourcesReleaseOnce(t *testing.T) {
	root := NewScene()
	tex := NewTexture("label", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	shared := NewShaderMaterial(Program{Name: "shared"}, NewUniforms().Set("map", tex))

	root.Add(
		NewMesh("a", NewSphereGeometry(1, 8, 8), shared),
		NewMesh("b", NewRingGeometry(0.1, 0.2, 8), shared),
		NewSprite("label", NewSpriteMaterial(tex)),
		NewPoints("stars", NewPointsGeometry(nil, nil), nil),
	)

	var res Resources
	res.TrackGraph(root)
	res.Track(tex, nil) // duplicate and nil are ignored

	// 3 geometries + shared material + sprite material + texture.
	if res.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", res.Len())
	}
	if n := res.Release(); n != 6 {
		t.Errorf("first Release() = %d, want 6", n)
	}
	if n := res.Release(); n != 0 {
		t.Errorf("second Release() = %d, want 0", n)
	}
	if res.Released() != 6 {
		t.Errorf("Released() = %d, want 6", res.Released())
	}
}

func TestSceneUniformsDeduplicates(t *testing.T) {
	root := NewScene()
	shared := NewShaderMaterial(Program{}, NewUniforms().Set(TimeUniform, 0.0))
	own := NewShaderMaterial(Program{}, NewUniforms().Set(TimeUniform, 0.0))
	root.Add(
		NewMesh("a", nil, shared),
		NewMesh("b", nil, shared),
		NewMesh("c", nil, own),
		NewSprite("s", NewSpriteMaterial(nil)),
	)
	if got := len(root.Uniforms()); got != 2 {
		t.Errorf("len(Uniforms()) = %d, want 2", got)
	}
}
