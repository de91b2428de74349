package trap

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"defaults", func(p *Params) {}, nil},
		{"zero frequency", func(p *Params) { p.Omega0 = 0 }, ErrFrequency},
		{"negative frequency", func(p *Params) { p.Omega0 = -2 }, ErrFrequency},
		{"nan frequency", func(p *Params) { p.Omega0 = math.NaN() }, ErrFrequency},
		{"zero mass", func(p *Params) { p.Mass = 0 }, ErrMass},
		{"negative damping", func(p *Params) { p.Gamma0 = -0.1 }, ErrDamping},
		{"negative delay", func(p *Params) { p.DelayPeriods = -1 }, ErrDelay},
		{"nan delay", func(p *Params) { p.DelayPeriods = math.NaN() }, ErrDelay},
		{"infinite delay", func(p *Params) { p.DelayPeriods = math.Inf(1) }, ErrDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriod(t *testing.T) {
	p := NewParams()
	p.Omega0 = 2 * math.Pi

	if got := p.Period(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Period() = %v, want 1.0", got)
	}
}

func TestDelaySteps(t *testing.T) {
	tests := []struct {
		name    string
		omega0  float64
		periods float64
		dt      float64
		want    int
	}{
		{"half period", 2 * math.Pi, 0.5, 0.01, 50},
		{"zero delay", 1.0, 0, 0.01, 0},
		{"rounds to nearest", 1.0, 1.0, 0.1, 63}, // 2π/0.1 = 62.83
		{"quarter period", 2 * math.Pi, 0.25, 0.001, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams()
			p.Omega0 = tt.omega0
			p.DelayPeriods = tt.periods
			if got := p.DelaySteps(tt.dt); got != tt.want {
				t.Errorf("DelaySteps(%v) = %d, want %d", tt.dt, got, tt.want)
			}
		})
	}
}

func TestPhase(t *testing.T) {
	p := NewParams()
	p.Omega0 = 2.0

	tests := []struct {
		q, v, want float64
	}{
		{1, 0, 0},
		{0, 2, math.Pi / 2},
		{-1, 0, math.Pi},
		{0, -2, -math.Pi / 2},
	}

	for _, tt := range tests {
		if got := p.Phase(tt.q, tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Phase(%v, %v) = %v, want %v", tt.q, tt.v, got, tt.want)
		}
	}
}

func TestFeedback(t *testing.T) {
	p := NewParams()
	p.Omega0 = 1.0
	p.DoubleAmp = 0.2
	p.DoublePhase = math.Pi / 2
	p.SingleAmp = 0.1
	p.SinglePhase = 0

	// At (q=1, v=0) the phase is zero, so the drives reduce to their
	// phase offsets.
	got := p.Feedback(1, 0)
	want := 0.2*math.Sin(math.Pi/2) + 0.1*math.Sin(0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Feedback(1, 0) = %v, want %v", got, want)
	}

	// At phase π/2 the double drive completes a half turn.
	got = p.Feedback(0, 1)
	want = 0.2*math.Sin(math.Pi+math.Pi/2) + 0.1*math.Sin(math.Pi/2)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Feedback(0, 1) = %v, want %v", got, want)
	}
}

func TestAccel(t *testing.T) {
	p := NewParams()
	p.Gamma0 = 0.1
	p.Omega0 = 2.0
	p.Alpha = 0.5
	p.Beta = 0.25

	// -0.1*3 + 1.2*(-4*2 + 1³ - 0.5⁵)
	got := p.Accel(2, 3, 1.2)
	want := -0.3 + 1.2*(-8+1-0.03125)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Accel(2, 3, 1.2) = %v, want %v", got, want)
	}
}

func TestAccelUnmodulated(t *testing.T) {
	p := NewParams()
	p.Gamma0 = 0.5
	p.Omega0 = 3.0

	// With g=0 only damping survives.
	if got := p.Accel(10, 2, 0); math.Abs(got-(-1.0)) > 1e-12 {
		t.Errorf("Accel(10, 2, 0) = %v, want -1.0", got)
	}
}

// TestEnergyGradient checks that the potential stored in Energy is the
// integral of the conservative force: dE/dq at v=0 must equal
// -Mass*Accel(q, 0, 1).
func TestEnergyGradient(t *testing.T) {
	p := NewParams()
	p.Mass = 1.5
	p.Omega0 = 1.3
	p.Alpha = 0.4
	p.Beta = 0.2

	const h = 1e-6
	for _, q := range []float64{0.1, 0.5, 1.0, 2.0} {
		grad := (p.Energy(q+h, 0) - p.Energy(q-h, 0)) / (2 * h)
		force := -p.Mass * p.Accel(q, 0, 1)
		if math.Abs(grad-force) > 1e-5*math.Max(1, math.Abs(force)) {
			t.Errorf("q=%v: dE/dq = %v, -m*a = %v", q, grad, force)
		}
	}
}

func TestEnergyScalesWithMass(t *testing.T) {
	p := NewParams()
	p.Mass = 2.0

	light := p
	light.Mass = 1.0

	if got, want := p.Energy(0.7, 0.3), 2*light.Energy(0.7, 0.3); math.Abs(got-want) > 1e-12 {
		t.Errorf("Energy = %v, want %v", got, want)
	}
}

func TestMapSetRoundTrip(t *testing.T) {
	p := NewParams()
	p.DoubleAmp = 0.15
	p.DelayPeriods = 0.25

	var q Params
	for name, value := range p.Map() {
		if err := q.Set(name, value); err != nil {
			t.Fatalf("Set(%q) failed: %v", name, err)
		}
	}
	if q != p {
		t.Errorf("round trip mismatch: got %+v, want %+v", q, p)
	}
}

func TestSetUnknown(t *testing.T) {
	p := NewParams()
	if err := p.Set("coupling", 1.0); err == nil {
		t.Error("Set with unknown name should fail")
	}
}
