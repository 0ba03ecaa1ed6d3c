package shader

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/vista/scene"
)

// NewEarthMaterial returns the earth surface material over tex.
func NewEarthMaterial(tex *scene.Texture, glow gg.RGBA) *scene.ShaderMaterial {
	return scene.NewShaderMaterial(Earth, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformGlowColor, glow).
		Set(UniformEarthTexture, tex))
}

// NewAtmosphereMaterial returns the additive back-side halo material.
func NewAtmosphereMaterial(glow gg.RGBA) *scene.ShaderMaterial {
	m := scene.NewShaderMaterial(Atmosphere, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformGlowColor, glow))
	m.Side = scene.BackSide
	m.Blending = scene.AdditiveBlending
	m.Transparent = true
	return m
}

// NewMarkerMaterial returns the pulsing marker point material.
func NewMarkerMaterial(color gg.RGBA) *scene.ShaderMaterial {
	return scene.NewShaderMaterial(Marker, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformColor, color))
}

// NewRingMaterial returns a double-sided additive ring whose alpha follows
// sin(time*speed + phase) remapped to [0, alphaScale].
func NewRingMaterial(color gg.RGBA, speed, phase, alphaScale float64) *scene.ShaderMaterial {
	m := scene.NewShaderMaterial(Ring, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformColor, color).
		Set(UniformSpeed, speed).
		Set(UniformPhase, phase).
		Set(UniformAlphaScale, alphaScale))
	m.Side = scene.DoubleSide
	m.Blending = scene.AdditiveBlending
	m.Transparent = true
	return m
}

// NewParticleMaterial returns the drifting backdrop particle material.
func NewParticleMaterial(bottom, top gg.RGBA) *scene.ShaderMaterial {
	m := scene.NewShaderMaterial(Particles, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformColor1, bottom).
		Set(UniformColor2, top))
	m.Blending = scene.AdditiveBlending
	m.Transparent = true
	m.DepthWrite = false
	return m
}

// NewStarMaterial returns the distant star material.
func NewStarMaterial() *scene.ShaderMaterial {
	m := scene.NewShaderMaterial(Stars, scene.NewUniforms().Set(UniformTime, 0.0))
	m.Blending = scene.AdditiveBlending
	m.Transparent = true
	m.DepthWrite = false
	return m
}

// NewFloatingMaterial returns the floating shape material.
func NewFloatingMaterial(color gg.RGBA) *scene.ShaderMaterial {
	return scene.NewShaderMaterial(Floating, scene.NewUniforms().
		Set(UniformTime, 0.0).
		Set(UniformColor, color))
}
