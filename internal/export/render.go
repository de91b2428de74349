// Package export renders stored runs to PNG figures.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// maxPoints caps how many samples reach a single figure; longer
// trajectories are decimated uniformly.
const maxPoints = 8192

// Trajectory writes a two-panel style time series figure of q(t) to
// path (PNG, by extension).
func Trajectory(path string, times, q []float64) error {
	if len(times) != len(q) || len(q) == 0 {
		return fmt.Errorf("export: trajectory data invalid (%d times, %d samples)", len(times), len(q))
	}

	p := plot.New()
	p.Title.Text = "Position"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "q"

	line, err := plotter.NewLine(decimate(times, q))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	return save(p, path)
}

// Phase writes a (q, v) phase portrait figure.
func Phase(path string, q, v []float64) error {
	if len(q) != len(v) || len(q) == 0 {
		return fmt.Errorf("export: phase data invalid (%d q, %d v)", len(q), len(v))
	}

	p := plot.New()
	p.Title.Text = "Phase portrait"
	p.X.Label.Text = "q"
	p.Y.Label.Text = "v"

	line, err := plotter.NewLine(decimate(q, v))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(0.5)
	p.Add(line)
	p.Add(plotter.NewGrid())

	return save(p, path)
}

// Spectrum writes a magnitude spectrum figure. Frequencies are bin
// index times df.
func Spectrum(path string, ps []float64, df float64) error {
	if len(ps) < 2 || df <= 0 {
		return fmt.Errorf("export: spectrum data invalid (%d bins, df=%v)", len(ps), df)
	}

	p := plot.New()
	p.Title.Text = "Spectrum"
	p.X.Label.Text = "frequency (Hz)"
	p.Y.Label.Text = "magnitude"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := make(plotter.XYs, 0, len(ps)-1)
	for i := 1; i < len(ps); i++ {
		if ps[i] <= 0 {
			continue // log scale cannot place zeros
		}
		pts = append(pts, plotter.XY{X: float64(i) * df, Y: ps[i]})
	}
	if len(pts) == 0 {
		return fmt.Errorf("export: spectrum is identically zero")
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	return save(p, path)
}

func decimate(xs, ys []float64) plotter.XYs {
	stride := 1
	if len(xs) > maxPoints {
		stride = len(xs) / maxPoints
	}
	pts := make(plotter.XYs, 0, len(xs)/stride+1)
	for i := 0; i < len(xs); i += stride {
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
