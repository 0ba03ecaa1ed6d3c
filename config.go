package vista

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("vista: invalid config")

// Config holds the tunables of every embeddable scene.
// The zero value is not useful; start from DefaultConfig.
type Config struct {
	Globe    GlobeConfig    `yaml:"globe"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Floating FloatingConfig `yaml:"floating"`
}

// GlobeConfig configures the rotating globe widget.
type GlobeConfig struct {
	// TextureURL is the single external asset fetched for the earth surface.
	TextureURL string `yaml:"texture"`

	// GlowColor tints the earth rim and the atmosphere shell ("#rrggbb").
	GlowColor string `yaml:"glow_color"`

	YawSensitivity   float64 `yaml:"yaw_sensitivity"`
	PitchSensitivity float64 `yaml:"pitch_sensitivity"`

	// AutoRotateSpeed is the per-frame yaw increment in radians.
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`

	// Damping is the exponential smoothing factor, 0 < Damping < 1.
	Damping float64 `yaml:"damping"`

	Marker MarkerConfig `yaml:"marker"`
}

// MarkerConfig places the highlighted location on the globe.
type MarkerConfig struct {
	Lat      float64 `yaml:"lat"`
	Long     float64 `yaml:"long"`
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
	Color    string  `yaml:"color"`
}

// BackdropConfig configures the full-page particle field.
type BackdropConfig struct {
	Particles int    `yaml:"particles"`
	Stars     int    `yaml:"stars"`
	Seed      uint64 `yaml:"seed"`
}

// FloatingConfig configures the decorative floating shape.
type FloatingConfig struct {
	Color         string  `yaml:"color"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	Scale         float64 `yaml:"scale"`
}

// DefaultConfig returns the configuration the scenes were designed with.
func DefaultConfig() Config {
	return Config{
		Globe: GlobeConfig{
			TextureURL:       "/earth_dark.jpg",
			GlowColor:        "#0099ff",
			YawSensitivity:   1.5,
			PitchSensitivity: 0.8,
			AutoRotateSpeed:  0.001,
			Damping:          0.05,
			Marker: MarkerConfig{
				Lat:      26.2006,
				Long:     92.9376,
				Title:    "Assam, India",
				Subtitle: "Home",
				Color:    "#ff3366",
			},
		},
		Backdrop: BackdropConfig{
			Particles: 2000,
			Stars:     5000,
			Seed:      1,
		},
		Floating: FloatingConfig{
			Color:         "#0099ff",
			RotationSpeed: 0.005,
			Scale:         1,
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig, so a document only
// needs the keys it overrides.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("vista: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("vista: read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	g := c.Globe
	switch {
	case g.Damping <= 0 || g.Damping >= 1:
		return fmt.Errorf("%w: globe.damping %v not in (0, 1)", ErrInvalidConfig, g.Damping)
	case g.Marker.Lat < -90 || g.Marker.Lat > 90:
		return fmt.Errorf("%w: globe.marker.lat %v", ErrInvalidConfig, g.Marker.Lat)
	case g.Marker.Long < -180 || g.Marker.Long > 180:
		return fmt.Errorf("%w: globe.marker.long %v", ErrInvalidConfig, g.Marker.Long)
	case c.Backdrop.Particles < 0 || c.Backdrop.Stars < 0:
		return fmt.Errorf("%w: backdrop counts must not be negative", ErrInvalidConfig)
	case c.Floating.Scale <= 0:
		return fmt.Errorf("%w: floating.scale %v must be positive", ErrInvalidConfig, c.Floating.Scale)
	}
	return nil
}
