package noise

import "math"

// Source is anything that yields a scalar in [-1, 1] for a 2D point.
type Source interface {
	Sample(x, y float64) float64
}

// Perlin evaluates classic 2D gradient noise over a Field.
type Perlin struct {
	field *Field
}

func NewPerlin(f *Field) *Perlin {
	return &Perlin{field: f}
}

func (p *Perlin) Field() *Field { return p.field }

// Sample returns noise at (x, y). Integer coordinates yield 0 and
// non-finite input yields 0.
func (p *Perlin) Sample(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return 0
	}

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix := int(x0)
	iy := int(y0)
	fx := x - x0
	fy := y - y0

	n00 := p.field.GradientAt(ix, iy).Dot(fx, fy)
	n10 := p.field.GradientAt(ix+1, iy).Dot(fx-1, fy)
	n01 := p.field.GradientAt(ix, iy+1).Dot(fx, fy-1)
	n11 := p.field.GradientAt(ix+1, iy+1).Dot(fx-1, fy-1)

	u := fade(fx)
	v := fade(fy)

	// unit gradients peak at sqrt(2)/2
	return clamp(lerp(v, lerp(u, n00, n10), lerp(u, n01, n11)) * math.Sqrt2)
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
