package anim

import (
	"fmt"
	"time"

	"github.com/san-kum/perlinlab/internal/noise"
	"github.com/san-kum/perlinlab/internal/render"
	"github.com/san-kum/perlinlab/internal/rng"
)

type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const DefaultStep = 0.02

type Config struct {
	Canvas  string
	Title   string
	Width   int
	Height  int
	Step    float64
	Gallery bool
	// GallerySize is the edge length of each square gallery canvas.
	GallerySize int
}

func DefaultConfig() Config {
	return Config{
		Canvas:      "2d",
		Title:       "2D Perlin noise (animation)",
		Width:       256,
		Height:      256,
		Step:        DefaultStep,
		GallerySize: 256,
	}
}

type Driver struct {
	host      Host
	gen       *noise.Generator
	renderer  *render.Renderer
	cfg       Config
	phase     Phase
	t         float64
	frames    int
	observers []Observer
	scenes    []render.Scene
	blank     []byte
}

// New registers the animation canvas (and gallery canvases when enabled)
// with host. Invalid dimensions are reported to the host and returned.
func New(host Host, gen *noise.Generator, r *render.Renderer, cfg Config) (*Driver, error) {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Canvas == "" {
		cfg.Canvas = DefaultConfig().Canvas
	}
	d := &Driver{
		host:     host,
		gen:      gen,
		renderer: r,
		cfg:      cfg,
	}

	if err := render.CheckDimensions(cfg.Width, cfg.Height); err != nil {
		d.logf("cannot create canvas %s: %v", cfg.Canvas, err)
		return nil, err
	}

	if cfg.Gallery {
		if err := render.CheckDimensions(cfg.GallerySize, cfg.GallerySize); err != nil {
			d.logf("cannot create gallery: %v", err)
			return nil, err
		}
		d.scenes = render.Gallery()
		for _, s := range d.scenes {
			d.heading(s.Title)
			if err := host.CreateCanvas(s.Name, cfg.GallerySize, cfg.GallerySize); err != nil {
				return nil, fmt.Errorf("create canvas %s: %w", s.Name, err)
			}
		}
	}

	d.heading(cfg.Title)
	if err := host.CreateCanvas(cfg.Canvas, cfg.Width, cfg.Height); err != nil {
		d.logf("cannot create canvas %s: %v", cfg.Canvas, err)
		return nil, fmt.Errorf("create canvas %s: %w", cfg.Canvas, err)
	}
	d.blank = make([]byte, cfg.Width*cfg.Height*4)

	return d, nil
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// SetSeed normalizes raw, rebuilds the field and resets the animation.
// Seeds that cannot be normalized fall back to rng.DefaultSeed with a
// diagnostic. The applied seed is returned.
func (d *Driver) SetSeed(raw string) (rng.Seed, error) {
	seed, err := rng.ParseSeed(raw)
	if err != nil {
		d.logf("%v; using default seed %s", err, seed)
	}
	return seed, d.SetSeedValue(seed)
}

// ChangeSeed applies raw and then resets the canvas, so the gallery and the
// first frame reflect the new field right away. The driver stays Idle until
// the next tick.
func (d *Driver) ChangeSeed(raw string) (rng.Seed, error) {
	seed, err := d.SetSeed(raw)
	if err != nil {
		return seed, err
	}
	return seed, d.ResetCanvas()
}

// SetSeedValue rebuilds the field for seed, clears the canvas and returns the
// driver to Idle with a zero time offset.
func (d *Driver) SetSeedValue(seed rng.Seed) error {
	d.gen.Rebuild(seed)
	d.t = 0
	d.phase = Idle

	for _, o := range d.observers {
		if so, ok := o.(SeedObserver); ok {
			so.OnSeed(seed)
		}
	}
	d.logf("seed set to %s", seed)

	if err := d.host.WritePixels(d.cfg.Canvas, d.blank); err != nil {
		return fmt.Errorf("clear canvas %s: %w", d.cfg.Canvas, err)
	}
	return nil
}

// ResetCanvas restarts the animation at time zero, redraws the gallery and
// paints the first frame immediately.
func (d *Driver) ResetCanvas() error {
	d.t = 0
	if err := d.drawGallery(); err != nil {
		return err
	}
	return d.present()
}

// Tick advances the animation by one step and paints the next frame.
func (d *Driver) Tick() error {
	if d.phase == Idle {
		d.phase = Running
	}
	d.t += d.cfg.Step
	return d.present()
}

// Redraw repaints the frame at the current time offset without advancing.
func (d *Driver) Redraw() error { return d.present() }

func (d *Driver) present() error {
	start := time.Now()
	f, err := d.renderer.Render(d.cfg.Width, d.cfg.Height, d.t)
	if err != nil {
		d.logf("render failed: %v", err)
		return err
	}
	elapsed := time.Since(start)

	if err := d.host.WritePixels(d.cfg.Canvas, f.Pix); err != nil {
		d.renderer.Release(f)
		return fmt.Errorf("write canvas %s: %w", d.cfg.Canvas, err)
	}
	d.frames++

	for _, o := range d.observers {
		o.OnFrame(f, elapsed)
	}

	if !d.retains() {
		d.renderer.Release(f)
	}
	return nil
}

func (d *Driver) drawGallery() error {
	for _, s := range d.scenes {
		r, err := render.NewRaster(d.cfg.GallerySize, d.cfg.GallerySize)
		if err != nil {
			return err
		}
		s.Draw(r, d.gen)
		if err := d.host.WritePixels(s.Name, r.Pix); err != nil {
			return fmt.Errorf("write canvas %s: %w", s.Name, err)
		}
	}
	return nil
}

func (d *Driver) retains() bool {
	pr, ok := d.host.(PixelRetainer)
	return ok && pr.RetainsPixels()
}

func (d *Driver) logf(format string, args ...interface{}) {
	if l, ok := d.host.(Logger); ok {
		l.Log(fmt.Sprintf(format, args...))
	}
}

func (d *Driver) heading(text string) {
	if t, ok := d.host.(Titler); ok && text != "" {
		t.CreateHeading(text)
	}
}

func (d *Driver) Phase() Phase                { return d.phase }
func (d *Driver) Time() float64               { return d.t }
func (d *Driver) Frames() int                 { return d.frames }
func (d *Driver) Seed() rng.Seed              { return d.gen.Seed() }
func (d *Driver) Config() Config              { return d.cfg }
func (d *Driver) Generator() *noise.Generator { return d.gen }
func (d *Driver) Renderer() *render.Renderer  { return d.renderer }
func (d *Driver) Scenes() []render.Scene      { return d.scenes }
