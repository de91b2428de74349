package noise

import (
	"fmt"
	"math"
)

// Pulse kinds understood by Samples.
const (
	Flat  = "flat"  // constant unit gain
	Sine  = "sine"  // 1 + Depth*sin(2π*Freq*t + Phase)
	Gauss = "gauss" // 1 + Depth*exp(-(t-Center)²/(2*Width²))
	Ramp  = "ramp"  // 1 + Depth*t/T, linear over the run
)

// Pulse describes a deterministic modulation envelope around unit trap
// power. Depth is the peak deviation from 1; the remaining fields only
// apply to the kinds that use them.
type Pulse struct {
	Kind   string
	Depth  float64
	Freq   float64 // sine frequency, Hz
	Phase  float64 // sine phase offset, rad
	Center float64 // gauss center time, s
	Width  float64 // gauss standard deviation, s
}

// Validate reports whether the pulse can be sampled.
func (p Pulse) Validate() error {
	switch p.Kind {
	case "", Flat, Sine, Ramp:
	case Gauss:
		if p.Width <= 0 {
			return fmt.Errorf("noise: gauss pulse needs positive width (got %v)", p.Width)
		}
	default:
		return fmt.Errorf("noise: unknown pulse kind %q", p.Kind)
	}
	return nil
}

// Samples renders the envelope on a grid of n steps of size dt. Sample
// i is evaluated at t=i*dt, the left edge of step i. An empty kind is
// treated as flat.
func (p Pulse) Samples(n int, dt float64) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	switch p.Kind {
	case "", Flat:
		for i := range out {
			out[i] = 1
		}
	case Sine:
		w := 2 * math.Pi * p.Freq
		for i := range out {
			out[i] = 1 + p.Depth*math.Sin(w*float64(i)*dt+p.Phase)
		}
	case Gauss:
		inv := 1 / (2 * p.Width * p.Width)
		for i := range out {
			d := float64(i)*dt - p.Center
			out[i] = 1 + p.Depth*math.Exp(-d*d*inv)
		}
	case Ramp:
		total := float64(n) * dt
		for i := range out {
			out[i] = 1 + p.Depth*float64(i)*dt/total
		}
	}
	return out, nil
}
