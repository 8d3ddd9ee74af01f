package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// minSamples is the shortest series with a meaningful spectrum.
const minSamples = 4

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns |X(k)|² for k in [0, N/2) where N is len(data)
// zero-padded to a power of two. The mean is removed first so the DC bin
// reflects only padding effects.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	padded := make([]float64, nextPow2(len(data)))
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a
	}
	return ps
}

// BinFrequency converts spectrum bin k to Hz for a series of n samples.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(nextPow2(n))
}

// DominantFrequency returns the frequency of the strongest non-DC bin and
// its power.
func DominantFrequency(data []float64, sampleRate float64) (float64, float64, error) {
	if len(data) < minSamples {
		return 0, 0, fmt.Errorf("spectrum of %d samples: %w", len(data), dynamo.ErrNoData)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, 0, dynamo.BoundsError("sample_rate", sampleRate, "> 0")
	}

	ps := PowerSpectrum(data)
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 {
		return 0, 0, nil
	}
	return BinFrequency(best, len(data), sampleRate), bestPower, nil
}
