package noise

import (
	"fmt"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Engine builds a Source bound to a freshly rebuilt field.
type Engine func(f *Field) Source

const (
	EnginePerlin  = "perlin"
	EngineSimplex = "simplex"
	EngineAquilax = "aquilax"
)

type Registry struct {
	engines map[string]Engine
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Engine)}

	r.engines[EnginePerlin] = func(f *Field) Source { return NewPerlin(f) }
	r.engines[EngineSimplex] = func(f *Field) Source {
		return &simplexSource{noise: opensimplex.New(int64(f.Seed()))}
	}
	r.engines[EngineAquilax] = func(f *Field) Source {
		return &aquilaxSource{noise: perlin.NewPerlin(2, 2, 1, int64(f.Seed()))}
	}

	return r
}

func (r *Registry) Register(name string, e Engine) { r.engines[name] = e }

func (r *Registry) Get(name string) (Engine, error) {
	e, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return e, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type simplexSource struct {
	noise opensimplex.Noise
}

func (s *simplexSource) Sample(x, y float64) float64 {
	return clamp(s.noise.Eval2(x, y))
}

type aquilaxSource struct {
	noise *perlin.Perlin
}

func (s *aquilaxSource) Sample(x, y float64) float64 {
	return clamp(s.noise.Noise2D(x, y))
}
