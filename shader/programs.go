// Package shader holds the material programs used by the vista scenes.
//
// Every program exists twice: as Go functions the software renderer calls
// per primitive, and as WGSL source that Compile turns into SPIR-V for GPU
// backends. Both read the same uniform names.
package shader

import (
	_ "embed"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/vista/scene"
)

// Uniform names shared by the Go programs and the WGSL sources.
const (
	UniformTime         = scene.TimeUniform
	UniformColor        = "color"
	UniformColor1       = "color1"
	UniformColor2       = "color2"
	UniformGlowColor    = "glowColor"
	UniformEarthTexture = "earthTexture"
	UniformSpeed        = "speed"
	UniformPhase        = "phase"
	UniformAlphaScale   = "alphaScale"
)

var (
	//go:embed wgsl/earth.wgsl
	earthWGSL string
	//go:embed wgsl/atmosphere.wgsl
	atmosphereWGSL string
	//go:embed wgsl/marker.wgsl
	markerWGSL string
	//go:embed wgsl/ring.wgsl
	ringWGSL string
	//go:embed wgsl/particles.wgsl
	particlesWGSL string
	//go:embed wgsl/stars.wgsl
	starsWGSL string
	//go:embed wgsl/floating.wgsl
	floatingWGSL string
)

var towardViewer = mgl64.Vec3{0, 0, 1}

// Earth samples the earth texture and adds a glow that grows toward the limb.
var Earth = scene.Program{
	Name:     "earth",
	Fragment: earthFragment,
	WGSL:     earthWGSL,
}

func earthFragment(u *scene.Uniforms, f scene.Fragment) (gg.RGBA, bool) {
	c := u.Texture(UniformEarthTexture).Sample(f.UV)
	i := rim(f.Normal, 0.7, 2)
	g := u.Color(UniformGlowColor)
	return gg.RGBA{
		R: clamp01(c.R + g.R*i),
		G: clamp01(c.G + g.G*i),
		B: clamp01(c.B + g.B*i),
		A: c.A,
	}, true
}

// Atmosphere is the additive halo drawn on the inside of a slightly larger
// sphere.
var Atmosphere = scene.Program{
	Name:     "atmosphere",
	Fragment: atmosphereFragment,
	WGSL:     atmosphereWGSL,
}

func atmosphereFragment(u *scene.Uniforms, f scene.Fragment) (gg.RGBA, bool) {
	i := rim(f.Normal, 0.65, 3)
	g := u.Color(UniformGlowColor)
	return gg.RGBA{R: g.R * i, G: g.G * i, B: g.B * i, A: clamp01(i * 0.3)}, true
}

// Marker pulses a solid colour toward white three times per 2π seconds.
var Marker = scene.Program{
	Name:     "marker",
	Fragment: markerFragment,
	WGSL:     markerWGSL,
}

func markerFragment(u *scene.Uniforms, _ scene.Fragment) (gg.RGBA, bool) {
	pulse := wave(u.Float(UniformTime), 3, 0)
	c := u.Color(UniformColor).Lerp(gg.White, pulse*0.3)
	c.A = 1
	return c, true
}

// Ring fades a solid colour in and out at the configured speed and phase.
var Ring = scene.Program{
	Name:     "ring",
	Fragment: ringFragment,
	WGSL:     ringWGSL,
}

func ringFragment(u *scene.Uniforms, _ scene.Fragment) (gg.RGBA, bool) {
	pulse := wave(u.Float(UniformTime), u.Float(UniformSpeed), u.Float(UniformPhase))
	c := u.Color(UniformColor)
	c.A = pulse * u.Float(UniformAlphaScale)
	return c, true
}

// Particles drift slowly and shade from color1 at the bottom of the field to
// color2 at the top.
var Particles = scene.Program{
	Name:      "particles",
	Vertex:    particleVertex,
	Fragment:  particleFragment,
	PointSize: pointSize(50),
	WGSL:      particlesWGSL,
}

func particleVertex(u *scene.Uniforms, p mgl64.Vec3) mgl64.Vec3 {
	t := u.Float(UniformTime)
	return mgl64.Vec3{
		p.X() + math.Sin(t*0.2+p.Z()*0.5)*0.1,
		p.Y() + math.Cos(t*0.15+p.X()*0.5)*0.1,
		p.Z(),
	}
}

func particleFragment(u *scene.Uniforms, f scene.Fragment) (gg.RGBA, bool) {
	if f.PointCoord > 0.5 {
		return gg.Transparent, false
	}
	mix := smoothstep(-5, 5, f.Position.Y())
	c := u.Color(UniformColor1).Lerp(u.Color(UniformColor2), mix)
	c.A = (1 - smoothstep(0.3, 0.5, f.PointCoord)) * 0.7
	return c, true
}

// Stars are small white points with a soft edge.
var Stars = scene.Program{
	Name:      "stars",
	Fragment:  starFragment,
	PointSize: pointSize(10),
	WGSL:      starsWGSL,
}

func starFragment(_ *scene.Uniforms, f scene.Fragment) (gg.RGBA, bool) {
	if f.PointCoord > 0.5 {
		return gg.Transparent, false
	}
	return gg.RGBA{R: 1, G: 1, B: 1, A: (1 - smoothstep(0.1, 0.5, f.PointCoord)) * 0.5}, true
}

// Floating shades a shape with a vertical gradient and a pulsing highlight
// near each face centre.
var Floating = scene.Program{
	Name:     "floating",
	Fragment: floatingFragment,
	WGSL:     floatingWGSL,
}

func floatingFragment(u *scene.Uniforms, f scene.Fragment) (gg.RGBA, bool) {
	gradient := (f.Position.Y() + 1.5) / 3
	pulse := wave(u.Float(UniformTime), 2, 0)
	edge := max(0, 1-10*math.Abs(f.UV.X()-0.5)*math.Abs(f.UV.Y()-0.5))

	color := u.Color(UniformColor)
	dark := gg.RGBA{R: color.R * 0.8, G: color.G * 0.8, B: color.B * 0.8, A: 1}
	base := dark.Lerp(color, gradient)
	c := base.Lerp(gg.White, edge*0.3*pulse)
	c.A = 1
	return c, true
}

// pointSize returns the size attenuation used by the point programs:
// factor world units per unit scale, shrinking with distance.
func pointSize(factor float64) scene.PointSizeFunc {
	return func(scale, viewZ float64) float64 {
		if viewZ >= 0 {
			return 0
		}
		return scale * factor / -viewZ
	}
}

// rim returns max(edge - n·z, 0)^exp for a view-space normal.
func rim(n mgl64.Vec3, edge, exp float64) float64 {
	return math.Pow(max(edge-n.Dot(towardViewer), 0), exp)
}

// wave maps sin(t*speed + phase) into [0, 1].
func wave(t, speed, phase float64) float64 {
	return math.Sin(t*speed+phase)*0.5 + 0.5
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
