package trap

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrFrequency is returned when the trap frequency is not positive.
	ErrFrequency = errors.New("trap: omega0 must be positive")

	// ErrMass is returned when the particle mass is not positive.
	ErrMass = errors.New("trap: mass must be positive")

	// ErrDamping is returned when the damping rate is negative.
	ErrDamping = errors.New("trap: gamma0 must be non-negative")

	// ErrDelay is returned when the feedback delay is negative or not
	// finite. A negative delay would make the feedback read ahead of
	// the integration frontier.
	ErrDelay = errors.New("trap: delay_periods must be a non-negative finite number")
)

// Params holds the physical parameters of the trapped particle. The zero
// value is not usable; start from NewParams and adjust fields.
type Params struct {
	Mass     float64 // particle mass
	Gamma0   float64 // velocity damping rate
	Omega0   float64 // natural trap frequency, rad/s
	NoiseAmp float64 // diffusion amplitude multiplying Wiener increments

	Alpha float64 // cubic softening scale of the trap
	Beta  float64 // quintic confinement scale of the trap

	DoubleAmp   float64 // amplitude of the sin(2φ) feedback drive
	DoublePhase float64 // phase offset of the sin(2φ) drive
	SingleAmp   float64 // amplitude of the sin(φ) feedback drive
	SinglePhase float64 // phase offset of the sin(φ) drive

	// DelayPeriods is the feedback latency expressed in trap periods.
	// Zero means instantaneous feedback.
	DelayPeriods float64
}

// NewParams returns a weakly damped thermal trap with no feedback.
func NewParams() Params {
	return Params{
		Mass:     1.0,
		Gamma0:   0.02,
		Omega0:   1.0,
		NoiseAmp: 0.05,
		Alpha:    0.0,
		Beta:     0.0,
	}
}

// Validate reports whether the parameters describe a physical trap.
func (p Params) Validate() error {
	if p.Omega0 <= 0 || math.IsNaN(p.Omega0) {
		return fmt.Errorf("%w (got %v)", ErrFrequency, p.Omega0)
	}
	if p.Mass <= 0 || math.IsNaN(p.Mass) {
		return fmt.Errorf("%w (got %v)", ErrMass, p.Mass)
	}
	if p.Gamma0 < 0 || math.IsNaN(p.Gamma0) {
		return fmt.Errorf("%w (got %v)", ErrDamping, p.Gamma0)
	}
	if p.DelayPeriods < 0 || math.IsNaN(p.DelayPeriods) || math.IsInf(p.DelayPeriods, 0) {
		return fmt.Errorf("%w (got %v)", ErrDelay, p.DelayPeriods)
	}
	return nil
}

// Period returns the natural trap period 2π/Omega0.
func (p Params) Period() float64 {
	return 2 * math.Pi / p.Omega0
}

// DelaySteps converts the feedback latency to a whole number of time
// steps of size dt, rounding to nearest.
func (p Params) DelaySteps(dt float64) int {
	return int(math.Round(p.DelayPeriods * p.Period() / dt))
}

// Phase returns the phase-space angle atan2(v/Omega0, q). Dividing the
// velocity by Omega0 puts both quadratures in the same units, so the
// angle advances uniformly for free harmonic motion.
func (p Params) Phase(q, v float64) float64 {
	return math.Atan2(v/p.Omega0, q)
}

// Feedback returns the phase-derived contribution to the power
// modulation for the (typically delayed) state (q, v).
func (p Params) Feedback(q, v float64) float64 {
	phi := p.Phase(q, v)
	return p.DoubleAmp*math.Sin(2*phi+p.DoublePhase) +
		p.SingleAmp*math.Sin(phi+p.SinglePhase)
}

// Accel returns the deterministic acceleration at (q, v) under power
// modulation g. The damping term is not modulated.
func (p Params) Accel(q, v, g float64) float64 {
	aq := p.Alpha * q
	bq := p.Beta * q
	bq2 := bq * bq
	return -p.Gamma0*v + g*(-p.Omega0*p.Omega0*q+aq*aq*aq-bq2*bq2*bq)
}

// Energy returns the mechanical energy at (q, v) for unit modulation.
// The potential integrates the conservative part of Accel:
//
//	U(q) = Omega0²q²/2 - Alpha³q⁴/4 + Beta⁵q⁶/6
func (p Params) Energy(q, v float64) float64 {
	q2 := q * q
	a3 := p.Alpha * p.Alpha * p.Alpha
	b3 := p.Beta * p.Beta * p.Beta
	b5 := b3 * p.Beta * p.Beta
	pot := 0.5*p.Omega0*p.Omega0*q2 - 0.25*a3*q2*q2 + b5*q2*q2*q2/6
	return p.Mass * (0.5*v*v + pot)
}

// Map returns the parameters keyed by their canonical names.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"mass":          p.Mass,
		"gamma0":        p.Gamma0,
		"omega0":        p.Omega0,
		"noise_amp":     p.NoiseAmp,
		"alpha":         p.Alpha,
		"beta":          p.Beta,
		"double_amp":    p.DoubleAmp,
		"double_phase":  p.DoublePhase,
		"single_amp":    p.SingleAmp,
		"single_phase":  p.SinglePhase,
		"delay_periods": p.DelayPeriods,
	}
}

// Set assigns the named parameter. Unknown names are an error so that
// sweeps fail loudly instead of scanning a constant.
func (p *Params) Set(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "gamma0":
		p.Gamma0 = value
	case "omega0":
		p.Omega0 = value
	case "noise_amp":
		p.NoiseAmp = value
	case "alpha":
		p.Alpha = value
	case "beta":
		p.Beta = value
	case "double_amp":
		p.DoubleAmp = value
	case "double_phase":
		p.DoublePhase = value
	case "single_amp":
		p.SingleAmp = value
	case "single_phase":
		p.SinglePhase = value
	case "delay_periods":
		p.DelayPeriods = value
	default:
		return fmt.Errorf("trap: unknown parameter %q", name)
	}
	return nil
}
