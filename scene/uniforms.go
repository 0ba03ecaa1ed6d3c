package scene

import (
	"sort"

	"github.com/gogpu/gg"
)

// TimeUniform is the entry the frame loop advances every tick.
const TimeUniform = "time"

// Uniforms maps uniform names to values for one material.
// Values are float64, gg.RGBA or *Texture. The frame loop writes;
// only shader programs read.
type Uniforms struct {
	values map[string]any
}

// NewUniforms returns an empty set.
func NewUniforms() *Uniforms {
	return &Uniforms{values: make(map[string]any)}
}

// Set stores v under name and returns u for chaining.
func (u *Uniforms) Set(name string, v any) *Uniforms {
	u.values[name] = v
	return u
}

// Has reports whether name is declared.
func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// SetTime writes elapsed seconds into the time entry if the set declares one.
func (u *Uniforms) SetTime(elapsed float64) {
	if _, ok := u.values[TimeUniform]; ok {
		u.values[TimeUniform] = elapsed
	}
}

// Float returns a scalar uniform, or 0 when absent or of another type.
func (u *Uniforms) Float(name string) float64 {
	f, _ := u.values[name].(float64)
	return f
}

// Color returns a colour uniform, or transparent black.
func (u *Uniforms) Color(name string) gg.RGBA {
	c, _ := u.values[name].(gg.RGBA)
	return c
}

// Texture returns a sampler uniform, or nil.
func (u *Uniforms) Texture(name string) *Texture {
	t, _ := u.values[name].(*Texture)
	return t
}

// Textures returns every sampler uniform, sorted by name.
func (u *Uniforms) Textures() []*Texture {
	var out []*Texture
	for _, name := range u.Names() {
		if t, ok := u.values[name].(*Texture); ok && t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the declared names in sorted order.
func (u *Uniforms) Names() []string {
	names := make([]string, 0, len(u.values))
	for k := range u.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
