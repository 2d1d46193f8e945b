package noise

import "math"

// Line is 1D gradient noise sharing the permutation of a Field.
type Line struct {
	field *Field
}

func NewLine(f *Field) *Line {
	return &Line{field: f}
}

// Sample returns noise at x in [-1, 1]. Integer x yields 0.
func (l *Line) Sample(x float64) float64 {
	if !finite(x) {
		return 0
	}

	x0 := math.Floor(x)
	ix := int(x0)
	d := x - x0

	w1 := d * l.field.slope(ix)
	w2 := (d - 1) * l.field.slope(ix+1)

	// |w| peaks at 0.5
	return clamp(lerp(fade(d), w1, w2) * 2)
}
