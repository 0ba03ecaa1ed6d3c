// Package backdrop builds the full-page particle field: a drifting cloud
// of gradient-coloured particles in front of a slowly turning star sphere.
// Layout is random but seeded, so a given seed always produces the same
// field.
package backdrop

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

// Field dimensions in world units.
const (
	ParticleSpread = 15.0
	ParticleDepth  = 10.0
	StarSpread     = 100.0
	StarPushBack   = 50.0

	// ParticleSpin and StarSpin are per-frame yaw increments in radians.
	ParticleSpin = 0.003
	StarSpin     = 0.0005
)

// CameraFOV is the vertical field of view the field is laid out for.
const CameraFOV = 75

var (
	particleBottom = gg.Hex("#0099ff")
	particleTop    = gg.Hex("#9933ff")
)

// Options configures the field.
type Options struct {
	Particles int
	Stars     int
	Seed      uint64
}

// DefaultOptions returns 2000 particles and 5000 stars.
func DefaultOptions() Options {
	return OptionsFromConfig(vista.DefaultConfig().Backdrop)
}

// OptionsFromConfig converts the YAML-facing configuration.
func OptionsFromConfig(c vista.BackdropConfig) Options {
	return Options{Particles: c.Particles, Stars: c.Stars, Seed: c.Seed}
}

// Backdrop holds the two point clouds.
type Backdrop struct {
	Particles *scene.Points
	Stars     *scene.Points
}

// New lays out the field and adds it to root.
func New(root *scene.Scene, opts Options) *Backdrop {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	positions := make([]mgl64.Vec3, max(opts.Particles, 0))
	scales := make([]float64, len(positions))
	for i := range positions {
		positions[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * ParticleSpread,
			(rng.Float64() - 0.5) * ParticleSpread,
			(rng.Float64() - 0.5) * ParticleDepth,
		}
		scales[i] = rng.Float64()
	}
	b := &Backdrop{}
	b.Particles = scene.NewPoints("particles",
		scene.NewPointsGeometry(positions, scales),
		shader.NewParticleMaterial(particleBottom, particleTop))

	stars := make([]mgl64.Vec3, max(opts.Stars, 0))
	sizes := make([]float64, len(stars))
	for i := range stars {
		stars[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * StarSpread,
			(rng.Float64() - 0.5) * StarSpread,
			(rng.Float64()-0.5)*StarSpread - StarPushBack,
		}
		sizes[i] = rng.Float64()*0.5 + 0.1
	}
	b.Stars = scene.NewPoints("stars",
		scene.NewPointsGeometry(stars, sizes),
		shader.NewStarMaterial())

	root.Add(b.Particles, b.Stars)
	vista.Logger().Debug("backdrop: built", "particles", len(positions), "stars", len(stars), "seed", opts.Seed)
	return b
}

// Update spins both clouds and eases the particles toward the viewport
// pointer target, given as rotations about X and Y.
func (b *Backdrop) Update(targetX, targetY float64) {
	r := &b.Particles.Rotation
	r.Y += ParticleSpin
	r.X = anim.Damp(r.X, targetX, anim.DampingFactor)
	r.Y = anim.Damp(r.Y, targetY, anim.DampingFactor)

	b.Stars.Rotation.Y += StarSpin
}
