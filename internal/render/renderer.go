package render

import (
	"math"

	"github.com/san-kum/perlinlab/internal/noise"
)

// Options control the mapping from pixel space to noise space.
type Options struct {
	// Scale is the noise-space distance between neighbouring pixels.
	Scale float64
	// Drift is the noise-space velocity applied per unit of time offset.
	Drift   noise.Vec2
	Palette string
}

func DefaultOptions() Options {
	return Options{
		Scale:   1.0 / 32,
		Drift:   noise.Vec2{X: 1, Y: 0.6},
		Palette: DefaultPalette,
	}
}

// Renderer evaluates a Source over every pixel of a canvas.
type Renderer struct {
	src     noise.Source
	opts    Options
	palette *Palette
	pool    *Pool
}

func New(src noise.Source, opts Options) (*Renderer, error) {
	if opts.Scale == 0 {
		opts.Scale = DefaultOptions().Scale
	}
	p, err := NewPalette(opts.Palette)
	if err != nil {
		return nil, err
	}
	opts.Palette = p.Name
	return &Renderer{src: src, opts: opts, palette: p}, nil
}

func (r *Renderer) Options() Options { return r.opts }

func (r *Renderer) SetScale(scale float64) {
	if scale > 0 {
		r.opts.Scale = scale
	}
}

func (r *Renderer) SetPalette(name string) error {
	p, err := NewPalette(name)
	if err != nil {
		return err
	}
	r.palette = p
	r.opts.Palette = p.Name
	return nil
}

// Render produces a width*height RGBA frame at time offset t.
func (r *Renderer) Render(width, height int, t float64) (*Frame, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if r.pool == nil || r.pool.Size() != width*height*4 {
		r.pool = NewPool(width, height)
	}

	f := &Frame{Width: width, Height: height, Time: t, Pix: r.pool.Get()}
	if r.opts.Palette == PaletteChannels {
		r.fillChannels(f)
	} else {
		r.fill(f)
	}
	return f, nil
}

// Release hands a frame's buffer back for reuse. The frame must not be used
// afterwards.
func (r *Renderer) Release(f *Frame) {
	if f == nil || r.pool == nil {
		return
	}
	r.pool.Put(f.Pix)
	f.Pix = nil
}

func (r *Renderer) fill(f *Frame) {
	scale := r.opts.Scale
	ox := f.Time * r.opts.Drift.X
	oy := f.Time * r.opts.Drift.Y
	pix := f.Pix

	i := 0
	for py := 0; py < f.Height; py++ {
		y := float64(py)*scale + oy
		for px := 0; px < f.Width; px++ {
			x := float64(px)*scale + ox
			cr, cg, cb := r.palette.RGB(Level(r.src.Sample(x, y)))
			pix[i] = cr
			pix[i+1] = cg
			pix[i+2] = cb
			pix[i+3] = 255
			i += 4
		}
	}
}

func (r *Renderer) fillChannels(f *Frame) {
	scale := r.opts.Scale
	ox := f.Time * r.opts.Drift.X
	oy := f.Time * r.opts.Drift.Y
	pix := f.Pix

	i := 0
	for py := 0; py < f.Height; py++ {
		y := float64(py)*scale + oy
		for px := 0; px < f.Width; px++ {
			x := float64(px)*scale + ox
			pix[i] = Level(r.src.Sample(x, y))
			pix[i+1] = Level(r.src.Sample(2*x+17.3, 2*y))
			pix[i+2] = Level(r.src.Sample(4*x-31.7, 4*y))
			pix[i+3] = 255
			i += 4
		}
	}
}

// Level maps a value in [-1, 1] to 0..255.
func Level(v float64) uint8 {
	if math.IsNaN(v) {
		v = 0
	}
	l := math.Round((v + 1) / 2 * 255)
	if l < 0 {
		return 0
	}
	if l > 255 {
		return 255
	}
	return uint8(l)
}
