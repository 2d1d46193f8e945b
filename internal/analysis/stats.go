package analysis

import (
	"math"

	"github.com/san-kum/perlinlab/internal/noise"
)

type Stats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

func Summarize(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}
	s := Stats{N: len(data), Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range data {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(data))

	var sq float64
	for _, v := range data {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(data)))
	return s
}

// Histogram counts samples in [-1, 1] into bins equal-width buckets. Values
// outside the range land in the edge buckets.
func Histogram(data []float64, bins int) []int {
	if bins <= 0 {
		return nil
	}
	counts := make([]int, bins)
	for _, v := range data {
		i := int((v + 1) / 2 * float64(bins))
		if i < 0 {
			i = 0
		}
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts
}

// Row samples src at n points along y, starting at x = 0 with the given step.
func Row(src noise.Source, y, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = src.Sample(float64(i)*step, y)
	}
	return out
}

// Grid samples src over a w*h lattice with the given step, row-major.
func Grid(src noise.Source, w, h int, step float64) []float64 {
	out := make([]float64, 0, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			out = append(out, src.Sample(float64(i)*step, float64(j)*step))
		}
	}
	return out
}

// Line1D samples 1D noise at n points with the given step.
func Line1D(l *noise.Line, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Sample(float64(i) * step)
	}
	return out
}
