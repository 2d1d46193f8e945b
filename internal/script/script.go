// Package script replays scenarios of seed changes, resets and ticks against
// an in-memory host and fingerprints the resulting frames. Scenarios double
// as regression fixtures: a step may pin the checksum it must produce.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/san-kum/perlinlab/internal/anim"
	"github.com/san-kum/perlinlab/internal/config"
	"github.com/san-kum/perlinlab/internal/host/memhost"
	"github.com/san-kum/perlinlab/internal/metrics"
	"github.com/san-kum/perlinlab/internal/rng"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyStep        = errors.New("script: step has no action")
	ErrChecksumMismatch = errors.New("script: checksum mismatch")
	ErrUnknownPreset    = errors.New("script: unknown preset")
)

// Scenario defines a scripted animation sequence
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is applied in a fixed order: seed, palette, scale, reset, ticks.
type Step struct {
	Seed    *string `yaml:"seed,omitempty"`
	Palette string  `yaml:"palette,omitempty"`
	Scale   float64 `yaml:"scale,omitempty"`
	Reset   bool    `yaml:"reset,omitempty"`
	Ticks   int     `yaml:"ticks,omitempty"`
	// Expect is the hex checksum the canvas must hold after the step.
	Expect string `yaml:"expect,omitempty"`
}

type StepResult struct {
	Index     int
	Seed      rng.Seed
	Phase     anim.Phase
	Time      float64
	Frames    int
	Checksum  uint64
	Luminance float64
}

type Result struct {
	Scenario string
	Steps    []StepResult
}

// Checksum is the fingerprint of the final canvas.
func (r *Result) Checksum() uint64 {
	if len(r.Steps) == 0 {
		return 0
	}
	return r.Steps[len(r.Steps)-1].Checksum
}

func FormatChecksum(sum uint64) string { return fmt.Sprintf("%016x", sum) }

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Preset != "" && config.GetPreset(sc.Preset) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, sc.Preset)
	}
	for i, st := range sc.Steps {
		if st.Ticks < 0 {
			return fmt.Errorf("step %d: negative ticks %d", i+1, st.Ticks)
		}
		if st.Scale < 0 {
			return fmt.Errorf("step %d: negative scale %g", i+1, st.Scale)
		}
		if st.Seed == nil && st.Palette == "" && st.Scale == 0 && !st.Reset && st.Ticks == 0 {
			return fmt.Errorf("step %d: %w", i+1, ErrEmptyStep)
		}
		if st.Expect != "" {
			if _, err := strconv.ParseUint(st.Expect, 16, 64); err != nil {
				return fmt.Errorf("step %d: bad checksum %q: %w", i+1, st.Expect, err)
			}
		}
	}
	return nil
}

// Run executes every step against a fresh in-memory host built from base,
// or from the scenario's preset when it names one.
func Run(ctx context.Context, sc *Scenario, base *config.Config, logger *log.Logger) (*Result, error) {
	cfg := base
	if sc.Preset != "" {
		cfg = config.GetPreset(sc.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, sc.Preset)
		}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	gen, r, err := cfg.Build()
	if err != nil && !errors.Is(err, rng.ErrInvalidSeed) {
		return nil, err
	}
	host := memhost.New()
	if logger != nil {
		host.WithLogger(logger)
	}
	ac := cfg.AnimConfig()
	d, err := anim.New(host, gen, r, ac)
	if err != nil {
		return nil, err
	}

	res := &Result{Scenario: sc.Name, Steps: make([]StepResult, 0, len(sc.Steps))}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if logger != nil {
			logger.Debug("step", "index", i+1, "of", len(sc.Steps))
		}
		if err := apply(d, st); err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}

		c, _ := host.Canvas(ac.Canvas)
		sr := StepResult{
			Index:    i + 1,
			Seed:     d.Seed(),
			Phase:    d.Phase(),
			Time:     d.Time(),
			Frames:   d.Frames(),
			Checksum: xxhash.Sum64(c.Pix),
		}
		if c.Pix != nil {
			sr.Luminance = metrics.Luminance(c.Pix)
		}
		res.Steps = append(res.Steps, sr)

		if st.Expect != "" {
			want, _ := strconv.ParseUint(st.Expect, 16, 64)
			if want != sr.Checksum {
				return res, fmt.Errorf("step %d: %w: want %s, got %s",
					i+1, ErrChecksumMismatch, FormatChecksum(want), FormatChecksum(sr.Checksum))
			}
		}
	}
	return res, nil
}

func apply(d *anim.Driver, st Step) error {
	if st.Seed != nil {
		if _, err := d.SetSeed(*st.Seed); err != nil {
			return err
		}
	}
	if st.Palette != "" {
		if err := d.Renderer().SetPalette(st.Palette); err != nil {
			return err
		}
	}
	if st.Scale > 0 {
		d.Renderer().SetScale(st.Scale)
	}
	if st.Reset {
		if err := d.ResetCanvas(); err != nil {
			return err
		}
	}
	for n := 0; n < st.Ticks; n++ {
		if err := d.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// SeedResult summarizes one seed of a sweep.
type SeedResult struct {
	Seed      rng.Seed
	Checksum  uint64
	Luminance float64
}

// SweepSeeds renders ticks frames for each seed and reports the last frame's
// fingerprint and mean luminance.
func SweepSeeds(ctx context.Context, base *config.Config, seeds []string, ticks int) ([]SeedResult, error) {
	results := make([]SeedResult, 0, len(seeds))
	for _, raw := range seeds {
		seed := raw
		sc := &Scenario{Steps: []Step{{Seed: &seed, Reset: true, Ticks: ticks}}}
		res, err := Run(ctx, sc, base, nil)
		if err != nil {
			return results, err
		}
		last := res.Steps[len(res.Steps)-1]
		results = append(results, SeedResult{
			Seed:      last.Seed,
			Checksum:  last.Checksum,
			Luminance: last.Luminance,
		})
	}
	return results, nil
}
