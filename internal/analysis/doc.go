// Package analysis inspects recorded cloth runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: flutter spectrum of a metric series
//   - [NewPhasePortrait]: one metric plotted against another
//   - [Sweep]: a metric's settled range across a parameter sweep
//
// # Flutter Frequency
//
// A sheet in steady wind oscillates around its sag equilibrium. The
// dominant frequency of the sag series is that oscillation:
//
//	hz, power, err := analysis.DominantFrequency(series["sag"], frameRate)
package analysis
