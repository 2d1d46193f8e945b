package config

import "sort"

// Presets are complete configurations keyed by name. GetPreset hands out
// copies so callers may adjust them freely.
var Presets = map[string]*Config{
	"classic": preset(func(c *Config) {}),
	"clouds": preset(func(c *Config) {
		c.Scale = 1.0 / 64
		c.Step = 0.01
		c.Drift = DriftConfig{X: 0.5, Y: 0.2}
		c.Palette = "ocean"
		c.Fractal = FractalConfig{Octaves: 5, Lacunarity: 2, Persistence: 0.5}
	}),
	"marble": preset(func(c *Config) {
		c.Engine = "simplex"
		c.Scale = 1.0 / 24
		c.Palette = "heat"
		c.Fractal = FractalConfig{Octaves: 3, Lacunarity: 2.2, Persistence: 0.6}
	}),
	"fine": preset(func(c *Config) {
		c.Scale = 1.0 / 8
		c.Step = 0.05
	}),
	"terrain": preset(func(c *Config) {
		c.Scale = 1.0 / 48
		c.Step = 0.005
		c.Palette = "terrain"
		c.Fractal = FractalConfig{Octaves: 6, Lacunarity: 2, Persistence: 0.45}
	}),
	"spectral": preset(func(c *Config) {
		c.Palette = "channels"
		c.Drift = DriftConfig{X: 0.8, Y: -0.3}
	}),
}

func preset(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
