package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of x sampled
// at spacing dt, together with the frequency resolution of the bins.
// Bin i sits at frequency i*df.
func PowerSpectrum(x []float64, dt float64) ([]float64, float64) {
	if len(x) < 2 || dt <= 0 {
		return nil, 0
	}

	c := fft.FFTReal(x)
	ps := make([]float64, len(c)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(c[i])
	}

	df := 1 / (float64(len(x)) * dt)
	return ps, df
}

// DominantFrequency locates the strongest non-DC bin and converts it to
// a frequency in Hz.
func DominantFrequency(ps []float64, df float64) float64 {
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) * df
}
