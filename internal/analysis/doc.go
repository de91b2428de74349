// Package analysis post-processes stored trajectories.
//
// The package offers:
//
//   - [PowerSpectrum]: one-sided FFT magnitude spectrum of a signal
//   - [DominantFrequency]: strongest spectral line in Hz
//   - [Quadratures]: rotating-frame decomposition of (q, v)
//   - [QuadratureVariance]: steady-state variances of both quadratures
//   - [Portrait]: ASCII phase portrait of a trajectory
//
// # Squeezing
//
// Parametric modulation at twice the trap frequency redistributes noise
// between the rotating-frame quadratures. Comparing their steady-state
// variances quantifies the effect:
//
//	varX, varY := analysis.QuadratureVariance(q, v, omega0, dt, 0.5)
//	ratio := varX / varY // < 1 when X is squeezed
package analysis
