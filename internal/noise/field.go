package noise

import (
	"math"

	"github.com/san-kum/perlinlab/internal/rng"
)

const tableSize = 256

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Dot(x, y float64) float64 { return v.X*x + v.Y*y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// eight directions at 45° steps
var gradients = [8]Vec2{
	{1, 0},
	{math.Sqrt2 / 2, math.Sqrt2 / 2},
	{0, 1},
	{-math.Sqrt2 / 2, math.Sqrt2 / 2},
	{-1, 0},
	{-math.Sqrt2 / 2, -math.Sqrt2 / 2},
	{0, -1},
	{math.Sqrt2 / 2, -math.Sqrt2 / 2},
}

// Field maps integer lattice points to unit gradients. The zero value is
// unbuilt; call Rebuild before sampling.
type Field struct {
	perm  [2 * tableSize]uint8
	seed  rng.Seed
	built bool
}

func NewField(seed rng.Seed) *Field {
	f := &Field{}
	f.Rebuild(seed)
	return f
}

// Rebuild regenerates the permutation from seed with a Fisher-Yates shuffle.
func (f *Field) Rebuild(seed rng.Seed) {
	var p [tableSize]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	s := rng.Initialize(seed)
	for i := tableSize - 1; i > 0; i-- {
		var j int
		j, s = rng.Intn(s, i+1)
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 2*tableSize; i++ {
		f.perm[i] = p[i&(tableSize-1)]
	}
	f.seed = seed
	f.built = true
}

func (f *Field) Built() bool { return f.built }

func (f *Field) Seed() rng.Seed { return f.seed }

// Permutation returns a copy of the base table.
func (f *Field) Permutation() [tableSize]uint8 {
	var p [tableSize]uint8
	copy(p[:], f.perm[:tableSize])
	return p
}

func (f *Field) hash(ix, iy int) uint8 {
	return f.perm[int(f.perm[ix&(tableSize-1)])+iy&(tableSize-1)]
}

// GradientAt returns the unit gradient at lattice point (ix, iy).
func (f *Field) GradientAt(ix, iy int) Vec2 {
	if !f.built {
		panic(ErrFieldNotBuilt)
	}
	return gradients[f.hash(ix, iy)&7]
}

// slope returns a 1D gradient in [-1, 1] for lattice point ix.
func (f *Field) slope(ix int) float64 {
	if !f.built {
		panic(ErrFieldNotBuilt)
	}
	return float64(f.perm[ix&(tableSize-1)])/127.5 - 1
}
