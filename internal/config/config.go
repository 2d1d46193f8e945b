package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/noise"
	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 256
	DefaultHeight      = 256
	DefaultScale       = 1.0 / 32
	DefaultStep        = anim.DefaultStep
	DefaultFPS         = 30
	DefaultOctaves     = 1
	DefaultLacunarity  = 2.0
	DefaultPersistence = 0.5
	DefaultDriftX      = 1.0
	DefaultDriftY      = 0.6
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Seed        string        `yaml:"seed"`
	Engine      string        `yaml:"engine"`
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	Scale       float64       `yaml:"scale"`
	Step        float64       `yaml:"step"`
	Drift       DriftConfig   `yaml:"drift"`
	Palette     string        `yaml:"palette"`
	Fractal     FractalConfig `yaml:"fractal"`
	FPS         int           `yaml:"fps"`
	Gallery     bool          `yaml:"gallery"`
	GallerySize int           `yaml:"gallery_size"`
	LogLevel    string        `yaml:"log_level"`
	MetricsAddr string        `yaml:"metrics_addr,omitempty"`
}

type DriftConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FractalConfig struct {
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Persistence float64 `yaml:"persistence"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:    rng.DefaultSeed.String(),
		Engine:  noise.EnginePerlin,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Scale:   DefaultScale,
		Step:    DefaultStep,
		Drift:   DriftConfig{X: DefaultDriftX, Y: DefaultDriftY},
		Palette: render.DefaultPalette,
		Fractal: FractalConfig{
			Octaves:     DefaultOctaves,
			Lacunarity:  DefaultLacunarity,
			Persistence: DefaultPersistence,
		},
		FPS:         DefaultFPS,
		GallerySize: DefaultWidth,
		LogLevel:    "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that cannot drive a session.
func (c *Config) Validate() error {
	if err := render.CheckDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if c.Gallery {
		if err := render.CheckDimensions(c.GallerySize, c.GallerySize); err != nil {
			return fmt.Errorf("gallery: %w", err)
		}
	}
	if !finite(c.Scale) || c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %g", ErrInvalidConfig, c.Scale)
	}
	if !finite(c.Step) || c.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidConfig, c.Step)
	}
	if !finite(c.Drift.X) || !finite(c.Drift.Y) {
		return fmt.Errorf("%w: drift must be finite, got (%g, %g)", ErrInvalidConfig, c.Drift.X, c.Drift.Y)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Fractal.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1, got %d", ErrInvalidConfig, c.Fractal.Octaves)
	}
	if f := c.Fractal.Lacunarity; !finite(f) || f <= 0 {
		return fmt.Errorf("%w: lacunarity must be positive, got %g", ErrInvalidConfig, f)
	}
	if f := c.Fractal.Persistence; !finite(f) || f < 0 {
		return fmt.Errorf("%w: persistence must not be negative, got %g", ErrInvalidConfig, f)
	}
	if _, err := noise.NewRegistry().Get(c.Engine); err != nil {
		return err
	}
	if _, err := render.NewPalette(c.Palette); err != nil {
		return err
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c *Config) NoiseOptions() noise.Options {
	return noise.Options{
		Engine:      c.Engine,
		Octaves:     c.Fractal.Octaves,
		Lacunarity:  c.Fractal.Lacunarity,
		Persistence: c.Fractal.Persistence,
	}
}

func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Scale:   c.Scale,
		Drift:   noise.Vec2{X: c.Drift.X, Y: c.Drift.Y},
		Palette: c.Palette,
	}
}

func (c *Config) AnimConfig() anim.Config {
	ac := anim.DefaultConfig()
	ac.Width = c.Width
	ac.Height = c.Height
	ac.Step = c.Step
	ac.Gallery = c.Gallery
	ac.GallerySize = c.GallerySize
	return ac
}

// Build assembles a generator and renderer from the config. The seed string
// goes through rng.ParseSeed; a rejected seed is returned alongside the
// working default so callers can report it.
func (c *Config) Build() (*noise.Generator, *render.Renderer, error) {
	seed, seedErr := rng.ParseSeed(c.Seed)
	gen, err := noise.NewGenerator(noise.NewRegistry(), seed, c.NoiseOptions())
	if err != nil {
		return nil, nil, err
	}
	r, err := render.New(gen, c.RenderOptions())
	if err != nil {
		return nil, nil, err
	}
	return gen, r, seedErr
}
