package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// Side selects which triangle faces are rasterized.
type Side uint8

const (
	// FrontSide draws counter-clockwise faces only.
	FrontSide Side = iota
	// BackSide draws clockwise faces only.
	BackSide
	// DoubleSide draws both.
	DoubleSide
)

// Blending selects how a material composites over what is already drawn.
type Blending uint8

const (
	// NormalBlending composites with source-over.
	NormalBlending Blending = iota
	// AdditiveBlending brightens what is behind.
	AdditiveBlending
)

// Fragment carries the interpolated inputs of one shaded primitive.
type Fragment struct {
	// UV is the texture coordinate at the primitive centre.
	UV mgl64.Vec2
	// Normal is the unit surface normal in view space.
	Normal mgl64.Vec3
	// Position is the object-space position before vertex displacement.
	Position mgl64.Vec3
	// PointCoord is the distance from a point sprite's centre, in [0, 0.5].
	PointCoord float64
}

// FragmentFunc shades one primitive. Returning false discards it.
type FragmentFunc func(u *Uniforms, f Fragment) (gg.RGBA, bool)

// VertexFunc displaces an object-space position before projection.
type VertexFunc func(u *Uniforms, position mgl64.Vec3) mgl64.Vec3

// PointSizeFunc returns a point's on-screen diameter in CSS pixels given
// its size attribute and view-space depth (negative in front of the camera).
type PointSizeFunc func(scale, viewZ float64) float64

// Program is a shader pair: Go functions used by the software renderer and
// the equivalent WGSL source compiled for GPU backends.
type Program struct {
	Name      string
	Vertex    VertexFunc
	Fragment  FragmentFunc
	PointSize PointSizeFunc
	WGSL      string
}

// Releaser frees a GPU-side object bound to a material.
type Releaser interface {
	Release()
}

// Material describes how a renderable is shaded.
type Material interface {
	// Uniforms returns the material's uniform set, or nil if it has none.
	Uniforms() *Uniforms
	// Textures lists textures the material samples from.
	Textures() []*Texture
	Dispose()
	Disposed() bool
}

// ShaderMaterial shades with a Program and a uniform set.
type ShaderMaterial struct {
	Program     Program
	Side        Side
	Blending    Blending
	Transparent bool
	DepthWrite  bool

	uniforms *Uniforms
	gpu      Releaser
	disposed bool
}

// NewShaderMaterial binds a program to its uniforms. A nil uniform set is
// replaced by an empty one.
func NewShaderMaterial(p Program, u *Uniforms) *ShaderMaterial {
	if u == nil {
		u = NewUniforms()
	}
	return &ShaderMaterial{Program: p, uniforms: u, DepthWrite: true}
}

// Uniforms returns the values the program reads.
func (m *ShaderMaterial) Uniforms() *Uniforms { return m.uniforms }

// Textures returns the textures bound in the uniforms.
func (m *ShaderMaterial) Textures() []*Texture { return m.uniforms.Textures() }

// BindGPU attaches the compiled GPU program so Dispose releases it.
// Any previously bound program is released first.
func (m *ShaderMaterial) BindGPU(r Releaser) {
	if m.gpu != nil {
		m.gpu.Release()
	}
	m.gpu = r
}

// GPU returns the bound GPU program, or nil.
func (m *ShaderMaterial) GPU() Releaser { return m.gpu }

// Dispose releases the GPU program. Textures are owned by whoever created
// them and are not touched. Calling it again is a no-op.
func (m *ShaderMaterial) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.gpu != nil {
		m.gpu.Release()
		m.gpu = nil
	}
}

// Disposed reports whether Dispose has run.
func (m *ShaderMaterial) Disposed() bool { return m.disposed }

// SpriteMaterial draws a camera-facing textured quad.
type SpriteMaterial struct {
	Map       *Texture
	Opacity   float64
	DepthTest bool

	disposed bool
}

// NewSpriteMaterial returns an opaque sprite material over tex.
func NewSpriteMaterial(tex *Texture) *SpriteMaterial {
	return &SpriteMaterial{Map: tex, Opacity: 1, DepthTest: true}
}

// Uniforms returns nil; sprites have no program.
func (m *SpriteMaterial) Uniforms() *Uniforms { return nil }

// Textures returns the sprite's map, if any.
func (m *SpriteMaterial) Textures() []*Texture {
	if m.Map == nil {
		return nil
	}
	return []*Texture{m.Map}
}

// Dispose marks the material released. The map is owned separately.
func (m *SpriteMaterial) Dispose() { m.disposed = true }

// Disposed reports whether Dispose has run.
func (m *SpriteMaterial) Disposed() bool { return m.disposed }
