// Package analysis characterizes noise output.
//
//   - [Summarize]: min, max, mean and standard deviation of samples
//   - [Histogram]: bucket counts over [-1, 1]
//   - [Row], [Line1D]: sample a horizontal slice of a source
//   - [PowerSpectrum]: magnitude spectrum of a sampled slice
//
// # Spectra
//
// Gradient noise has no energy at the lattice frequency and above, so the
// spectrum of a row sampled at step 1/32 falls off well before bin n/32:
//
//	row := analysis.Row(gen, 0, 1.0/32, 1024)
//	ps := analysis.PowerSpectrum(row)
package analysis
