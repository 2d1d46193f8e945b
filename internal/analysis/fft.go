package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the complex DFT of data after removing its mean. Any length is
// accepted.
func Spectrum(data []float64) []complex128 {
	if len(data) == 0 {
		return nil
	}
	mean := Summarize(data).Mean
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}
	return fft.FFTReal(centered)
}

// PowerSpectrum returns the magnitudes of the first half of the spectrum,
// normalized by the sample count.
func PowerSpectrum(data []float64) []float64 {
	spec := Spectrum(data)
	ps := make([]float64, len(spec)/2)
	n := float64(len(data))
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i]) / n
	}
	return ps
}

// PeakBin is the index of the largest non-DC bin, or 0 for short input.
func PeakBin(ps []float64) int {
	peak := 0
	for i := 1; i < len(ps); i++ {
		if peak == 0 || ps[i] > ps[peak] {
			peak = i
		}
	}
	return peak
}
