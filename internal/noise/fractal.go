package noise

// Fractal sums octaves of a Source. Output stays in [-1, 1].
type Fractal struct {
	Source      Source
	Octaves     int
	Lacunarity  float64
	Persistence float64
}

func (f *Fractal) Sample(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return 0
	}
	octaves := f.Octaves
	if octaves < 1 {
		octaves = 1
	}

	var total, maxAmp float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += f.Source.Sample(x*freq, y*freq) * amp
		maxAmp += amp
		freq *= f.Lacunarity
		amp *= f.Persistence
	}
	if maxAmp == 0 {
		return 0
	}
	return clamp(total / maxAmp)
}
