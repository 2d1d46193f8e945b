// Package noise implements seedable gradient noise.
//
//   - [Field]: permutation-hashed lattice of unit gradient vectors
//   - [Perlin]: 2D Perlin noise over a Field, output in [-1, 1]
//   - [Line]: 1D gradient noise over the same permutation
//   - [Fractal]: octave sum over any [Source]
//   - [Generator]: a Field plus the engine selected from a [Registry]
//
// # Example
//
//	f := noise.NewField(rng.FromString("42"))
//	p := noise.NewPerlin(f)
//	v := p.Sample(1.5, 2.25)
//
// # Thread Safety
//
// Sampling only reads the field and is safe from many goroutines. [Field.Rebuild]
// writes it; callers must not rebuild while another goroutine samples.
package noise
