// Package globe composes the rotating earth widget: a textured sphere with
// an edge glow, an additive atmosphere shell and a highlight group holding
// the location marker.
//
// The earth exists only once its texture load has resolved. Until then
// Update is a no-op, so the frame loop can tick and render an empty scene
// while the texture is in flight.
package globe

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/asset"
	"github.com/gogpu/vista/geo"
	"github.com/gogpu/vista/interaction"
	"github.com/gogpu/vista/scene"
	"github.com/gogpu/vista/shader"
)

// ErrAlreadyBuilt is returned when a globe is built twice.
var ErrAlreadyBuilt = errors.New("globe: already built")

// Geometry of the globe and its shell.
const (
	EarthRadius      = 1.0
	AtmosphereRadius = 1.03
	sphereSegments   = 64
)

// Options configures a globe.
type Options struct {
	GlowColor       gg.RGBA
	AutoRotateSpeed float64
	Damping         float64
	Sensitivity     interaction.Sensitivity
	Marker          MarkerOptions
}

// DefaultOptions returns the stock globe: blue glow, marker over Assam.
func DefaultOptions() Options {
	o, _ := OptionsFromConfig(vista.DefaultConfig().Globe)
	return o
}

// OptionsFromConfig converts the YAML-facing configuration.
func OptionsFromConfig(c vista.GlobeConfig) (Options, error) {
	glow, err := parseColor(c.GlowColor)
	if err != nil {
		return Options{}, err
	}
	marker, err := parseColor(c.Marker.Color)
	if err != nil {
		return Options{}, err
	}
	return Options{
		GlowColor:       glow,
		AutoRotateSpeed: c.AutoRotateSpeed,
		Damping:         c.Damping,
		Sensitivity: interaction.Sensitivity{
			Yaw:   c.YawSensitivity,
			Pitch: c.PitchSensitivity,
		},
		Marker: MarkerOptions{
			Lat:      c.Marker.Lat,
			Long:     c.Marker.Long,
			Title:    c.Marker.Title,
			Subtitle: c.Marker.Subtitle,
			Color:    marker,
		},
	}, nil
}

func parseColor(s string) (gg.RGBA, error) {
	switch len(s) {
	case 4, 7, 9:
		if s[0] == '#' {
			return gg.Hex(s), nil
		}
	}
	return gg.RGBA{}, fmt.Errorf("%w: colour %q", vista.ErrInvalidConfig, s)
}

// Globe is the earth composite. It is used from the frame loop goroutine.
type Globe struct {
	opts  Options
	state asset.State

	Earth      *scene.Mesh
	Atmosphere *scene.Mesh
	Highlight  *scene.Group
	Marker     *Marker
}

// New returns an unbuilt globe in the Pending state.
func New(opts Options) *Globe {
	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = anim.DampingFactor
	}
	return &Globe{opts: opts}
}

// State returns the texture resolution the globe was built with, Pending
// before Build.
func (g *Globe) State() asset.State { return g.state }

// Built reports whether the earth is in the scene.
func (g *Globe) Built() bool { return g.Earth != nil }

// Resolve builds the globe from a load result: the loaded texture, or the
// procedural fallback when the load failed. It returns the marker caption
// error, if any; the globe is built either way.
func (g *Globe) Resolve(root *scene.Scene, res asset.Result) error {
	tex := res.Texture
	state := res.State
	if state != asset.Loaded || tex == nil {
		tex = scene.NewTexture("earth-fallback", geo.FallbackTexture())
		state = asset.Failed
	}
	return g.Build(root, tex, state)
}

// Build adds the earth, the atmosphere and the highlight group to root.
func (g *Globe) Build(root *scene.Scene, tex *scene.Texture, state asset.State) error {
	if g.Built() {
		return ErrAlreadyBuilt
	}
	g.state = state

	g.Earth = scene.NewMesh("earth",
		scene.NewSphereGeometry(EarthRadius, sphereSegments, sphereSegments),
		shader.NewEarthMaterial(tex, g.opts.GlowColor))
	g.Atmosphere = scene.NewMesh("atmosphere",
		scene.NewSphereGeometry(AtmosphereRadius, sphereSegments, sphereSegments),
		shader.NewAtmosphereMaterial(g.opts.GlowColor))
	g.Highlight = scene.NewGroup("highlight")

	marker, err := NewMarker(g.opts.Marker)
	g.Marker = marker
	g.Highlight.Add(marker.Objects()...)
	root.Add(g.Earth, g.Atmosphere, g.Highlight)

	vista.Logger().Info("globe: built", "texture", state.String())
	if err != nil {
		return fmt.Errorf("globe: marker label: %w", err)
	}
	return nil
}

// Update advances the rotation for one frame. Auto mode spins both spheres
// about Y; interactive mode eases the earth toward the pointer target and
// the atmosphere follows it exactly. The highlight group mirrors the earth.
func (g *Globe) Update(ps interaction.PointerState) {
	if !g.Built() {
		return
	}
	earth, atmos := &g.Earth.Rotation, &g.Atmosphere.Rotation
	if ps.Mode == interaction.Auto {
		earth.Y += g.opts.AutoRotateSpeed
		atmos.Y += g.opts.AutoRotateSpeed
	} else {
		earth.Y = anim.Damp(earth.Y, ps.TargetY, g.opts.Damping)
		earth.X = anim.Damp(earth.X, ps.TargetX, g.opts.Damping)
		atmos.X, atmos.Y = earth.X, earth.Y
	}
	g.Highlight.Rotation = *earth
}
