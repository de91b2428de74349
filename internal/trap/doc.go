// Package trap models a damped, stochastically driven particle in a
// nonlinear trap with delayed phase feedback.
//
// The trap potential combines a harmonic restoring force with cubic and
// quintic corrections, all scaled by a time-dependent power modulation:
//
//	a(q, v, g) = -Gamma0*v + g*(-Omega0²*q + (Alpha*q)³ - (Beta*q)⁵)
//
// The modulation g carries the squeezing pulse plus two feedback drives
// derived from the particle phase a configurable number of trap periods
// in the past:
//
//	g = pulse + DoubleAmp*sin(2φ+DoublePhase) + SingleAmp*sin(φ+SinglePhase)
//
// where φ = atan2(v/Omega0, q) is the phase-space angle of the delayed
// state. The sin(2φ) drive modulates the trap stiffness at twice the
// oscillation frequency (parametric gain/loss); the sin(φ) drive acts as
// a linear displacement force.
//
// [Params] is a plain value type; all methods are pure. The stochastic
// time stepping lives in the sde package.
package trap
