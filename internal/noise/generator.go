package noise

import "github.com/san-kum/perlinlab/internal/rng"

// Generator couples a Field with one engine and optional octaves. It is the
// Source the renderer and driver work against.
type Generator struct {
	field   *Field
	engine  Engine
	name    string
	octaves int
	lac     float64
	pers    float64
	src     Source
}

// Options select the engine and fractal layering.
type Options struct {
	Engine      string
	Octaves     int
	Lacunarity  float64
	Persistence float64
}

func DefaultOptions() Options {
	return Options{
		Engine:      EnginePerlin,
		Octaves:     1,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

func NewGenerator(reg *Registry, seed rng.Seed, opts Options) (*Generator, error) {
	if opts.Engine == "" {
		opts.Engine = EnginePerlin
	}
	e, err := reg.Get(opts.Engine)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		field:   &Field{},
		engine:  e,
		name:    opts.Engine,
		octaves: opts.Octaves,
		lac:     opts.Lacunarity,
		pers:    opts.Persistence,
	}
	g.Rebuild(seed)
	return g, nil
}

// Rebuild regenerates the field and the engine for seed.
func (g *Generator) Rebuild(seed rng.Seed) {
	g.field.Rebuild(seed)
	src := g.engine(g.field)
	if g.octaves > 1 {
		src = &Fractal{Source: src, Octaves: g.octaves, Lacunarity: g.lac, Persistence: g.pers}
	}
	g.src = src
}

func (g *Generator) Sample(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return 0
	}
	return g.src.Sample(x, y)
}

func (g *Generator) Field() *Field { return g.field }

func (g *Generator) Seed() rng.Seed { return g.field.Seed() }

func (g *Generator) Engine() string { return g.name }

// Line returns 1D noise over the current field.
func (g *Generator) Line() *Line { return NewLine(g.field) }
