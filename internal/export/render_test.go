package export

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func orbit(n int) (times, q, v []float64) {
	times = make([]float64, n)
	q = make([]float64, n)
	v = make([]float64, n)
	for i := range q {
		t := float64(i) * 1e-2
		times[i] = t
		q[i] = math.Cos(t)
		v[i] = -math.Sin(t)
	}
	return
}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("figure missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("figure %s is empty", path)
	}
}

func TestTrajectory(t *testing.T) {
	times, q, _ := orbit(2000)
	path := filepath.Join(t.TempDir(), "trajectory.png")

	if err := Trajectory(path, times, q); err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	checkPNG(t, path)
}

func TestTrajectoryDecimates(t *testing.T) {
	times, q, _ := orbit(100000)
	path := filepath.Join(t.TempDir(), "big.png")

	if err := Trajectory(path, times, q); err != nil {
		t.Fatalf("Trajectory failed on long input: %v", err)
	}
	checkPNG(t, path)
}

func TestTrajectoryInvalid(t *testing.T) {
	if err := Trajectory("x.png", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if err := Trajectory("x.png", nil, nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestPhase(t *testing.T) {
	_, q, v := orbit(2000)
	path := filepath.Join(t.TempDir(), "phase.png")

	if err := Phase(path, q, v); err != nil {
		t.Fatalf("Phase failed: %v", err)
	}
	checkPNG(t, path)
}

func TestSpectrum(t *testing.T) {
	ps := make([]float64, 512)
	for i := range ps {
		ps[i] = 1 / (1 + math.Abs(float64(i)-40))
	}
	path := filepath.Join(t.TempDir(), "spectrum.png")

	if err := Spectrum(path, ps, 0.25); err != nil {
		t.Fatalf("Spectrum failed: %v", err)
	}
	checkPNG(t, path)
}

func TestSpectrumInvalid(t *testing.T) {
	if err := Spectrum("x.png", []float64{1}, 1); err == nil {
		t.Error("expected error for single bin")
	}
	if err := Spectrum("x.png", []float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero df")
	}
	if err := Spectrum(filepath.Join(t.TempDir(), "z.png"), []float64{0, 0, 0}, 1); err == nil {
		t.Error("expected error for all-zero spectrum")
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	times, q, _ := orbit(100)
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")

	if err := Trajectory(path, times, q); err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	checkPNG(t, path)
}
