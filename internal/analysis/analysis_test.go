package analysis

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestPowerSpectrumSine(t *testing.T) {
	const (
		freq = 2.0
		dt   = 1e-3
		n    = 4096
	)
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	ps, df := PowerSpectrum(x, dt)
	if len(ps) != n/2 {
		t.Fatalf("spectrum length = %d, want %d", len(ps), n/2)
	}
	if math.Abs(df-1/(float64(n)*dt)) > 1e-15 {
		t.Fatalf("df = %v, want %v", df, 1/(float64(n)*dt))
	}

	got := DominantFrequency(ps, df)
	if math.Abs(got-freq) > df {
		t.Errorf("dominant frequency = %v Hz, want %v ± %v", got, freq, df)
	}
}

func TestPowerSpectrumIgnoresDC(t *testing.T) {
	const (
		dt = 1e-2
		n  = 1024
	)
	x := make([]float64, n)
	for i := range x {
		x[i] = 10 + 0.5*math.Sin(2*math.Pi*3*float64(i)*dt)
	}

	ps, df := PowerSpectrum(x, dt)
	if got := DominantFrequency(ps, df); math.Abs(got-3) > df {
		t.Errorf("dominant frequency = %v Hz, want 3 (offset must not win)", got)
	}
}

func TestPowerSpectrumDegenerate(t *testing.T) {
	if ps, _ := PowerSpectrum(nil, 1e-3); ps != nil {
		t.Error("expected nil spectrum for empty input")
	}
	if ps, _ := PowerSpectrum([]float64{1, 2, 3}, 0); ps != nil {
		t.Error("expected nil spectrum for zero dt")
	}
	if f := DominantFrequency(nil, 1); f != 0 {
		t.Errorf("DominantFrequency(nil) = %v, want 0", f)
	}
}

// TestQuadraturesFreeMotion samples an exact harmonic orbit; in the
// rotating frame it must freeze.
func TestQuadraturesFreeMotion(t *testing.T) {
	const (
		omega0 = 1.7
		dt     = 1e-3
		n      = 5000
	)
	q := make([]float64, n)
	v := make([]float64, n)
	for i := range q {
		wt := omega0 * float64(i) * dt
		q[i] = 0.8*math.Cos(wt) + 0.3*math.Sin(wt)
		v[i] = omega0 * (-0.8*math.Sin(wt) + 0.3*math.Cos(wt))
	}

	x, y := Quadratures(q, v, omega0, dt)
	for i := range x {
		if math.Abs(x[i]-0.8) > 1e-9 {
			t.Fatalf("X[%d] = %v, want 0.8", i, x[i])
		}
		if math.Abs(y[i]-0.3) > 1e-9 {
			t.Fatalf("Y[%d] = %v, want 0.3", i, y[i])
		}
	}
}

// TestQuadratureVarianceSqueezed builds a synthetic state with a quiet
// X quadrature and a loud Y quadrature and checks the estimator sees
// the asymmetry.
func TestQuadratureVarianceSqueezed(t *testing.T) {
	const (
		omega0 = 1.0
		dt     = 1e-2
		n      = 20000
	)
	rng := rand.New(rand.NewSource(5))
	q := make([]float64, n)
	v := make([]float64, n)
	for i := range q {
		wt := omega0 * float64(i) * dt
		xq := 0.05 * rng.NormFloat64()
		yq := 0.5 * rng.NormFloat64()
		// Invert the rotating-frame map for known quadratures.
		q[i] = xq*math.Cos(wt) + yq*math.Sin(wt)
		v[i] = omega0 * (-xq*math.Sin(wt) + yq*math.Cos(wt))
	}

	varX, varY := QuadratureVariance(q, v, omega0, dt, 0.5)
	if varX >= varY {
		t.Fatalf("varX = %v should be well below varY = %v", varX, varY)
	}
	if ratio := varX / varY; ratio > 0.05 {
		t.Errorf("variance ratio = %v, want below 0.05", ratio)
	}
}

func TestQuadratureVarianceDegenerate(t *testing.T) {
	if vx, vy := QuadratureVariance(nil, nil, 1, 1e-3, 0.5); vx != 0 || vy != 0 {
		t.Error("expected zeros for empty input")
	}
}

func TestPortrait(t *testing.T) {
	const n = 500
	q := make([]float64, n)
	v := make([]float64, n)
	for i := range q {
		wt := 2 * math.Pi * float64(i) / n
		q[i] = math.Cos(wt)
		v[i] = -math.Sin(wt)
	}

	const (
		width  = 40
		height = 20
	)
	out := Portrait(q, v, width, height)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != height {
		t.Fatalf("portrait has %d lines, want %d", len(lines), height)
	}
	for i, line := range lines {
		if got := len([]rune(line)); got != width {
			t.Fatalf("line %d has %d columns, want %d", i, got, width)
		}
	}
	if !strings.ContainsRune(out, '•') {
		t.Error("portrait contains no points")
	}
	if !strings.ContainsRune(out, '│') || !strings.ContainsRune(out, '─') {
		t.Error("axes should cross a centered orbit")
	}
}

func TestPortraitDegenerate(t *testing.T) {
	if out := Portrait(nil, nil, 40, 20); out != "" {
		t.Error("expected empty portrait for no data")
	}
	if out := Portrait([]float64{1}, []float64{1, 2}, 40, 20); out != "" {
		t.Error("expected empty portrait for mismatched inputs")
	}
}
