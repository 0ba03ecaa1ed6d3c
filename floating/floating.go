// Package floating builds the decorative floating cube: a shaded box that
// spins about Y, bobs gently and tilts toward the pointer.
package floating

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/interaction"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

// Shape and motion constants.
const (
	CubeSize     = 1.5
	BobAmplitude = 0.1
	BobRate      = 0.5
)

// Options configures the shape.
type Options struct {
	Color gg.RGBA
	// RotationSpeed is the per-frame yaw increment in radians.
	RotationSpeed float64
	Scale         float64
	Sensitivity   interaction.Sensitivity
}

// DefaultOptions returns a blue unit-scale cube.
func DefaultOptions() Options {
	o, _ := OptionsFromConfig(vista.DefaultConfig().Floating)
	return o
}

// OptionsFromConfig converts the YAML-facing configuration.
func OptionsFromConfig(c vista.FloatingConfig) (Options, error) {
	if len(c.Color) == 0 || c.Color[0] != '#' {
		return Options{}, fmt.Errorf("%w: colour %q", vista.ErrInvalidConfig, c.Color)
	}
	return Options{
		Color:         gg.Hex(c.Color),
		RotationSpeed: c.RotationSpeed,
		Scale:         c.Scale,
		Sensitivity:   interaction.Sensitivity{Yaw: 1.5, Pitch: 1.5},
	}, nil
}

// Floating is the cube composite.
type Floating struct {
	Mesh *scene.Mesh
	opts Options
}

// New adds the cube to root.
func New(root *scene.Scene, opts Options) *Floating {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	m := scene.NewMesh("floating",
		scene.NewBoxGeometry(CubeSize, CubeSize, CubeSize),
		shader.NewFloatingMaterial(opts.Color))
	m.Scale = mgl64.Vec3{opts.Scale, opts.Scale, opts.Scale}
	root.Add(m)
	return &Floating{Mesh: m, opts: opts}
}

// Update spins the cube, eases its X and Z tilt toward the pointer target
// and bobs it on Y. The shape always follows the pointer; the rotation
// mode is ignored.
func (f *Floating) Update(fr anim.Frame, ps interaction.PointerState) {
	r := &f.Mesh.Rotation
	r.Y += f.opts.RotationSpeed
	r.X = anim.Damp(r.X, ps.TargetX, anim.DampingFactor)
	r.Z = anim.Damp(r.Z, ps.TargetY, anim.DampingFactor)
	f.Mesh.Position[1] = math.Sin(fr.Seconds()*BobRate) * BobAmplitude
}
