package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/trapsim/internal/analysis"
	"github.com/san-kum/trapsim/internal/config"
	"github.com/san-kum/trapsim/internal/experiment"
	"github.com/san-kum/trapsim/internal/export"
	"github.com/san-kum/trapsim/internal/sde"
	"github.com/san-kum/trapsim/internal/storage"
	"github.com/san-kum/trapsim/internal/viz"
)

const barWidth = 50

var (
	dataDir    string
	configFile string
	preset     string
	label      string

	dt      float64
	steps   int
	seed    int64
	scratch string
	q0      float64
	v0      float64

	// Trap parameters
	mass         float64
	gamma0       float64
	omega0       float64
	noiseAmp     float64
	alpha        float64
	beta         float64
	doubleAmp    float64
	doublePhase  float64
	singleAmp    float64
	singlePhase  float64
	delayPeriods float64

	// Drive envelope
	pulseKind   string
	pulseDepth  float64
	pulseFreq   float64
	pulsePhase  float64
	pulseCenter float64
	pulseWidth  float64

	// Ensemble and sweep
	numRuns   int
	sweepRuns int
	sweepFrom float64
	sweepTo   float64
	sweepPts  int
	planFile  string

	// Phase plot dimensions
	phaseWidth  int
	phaseHeight int

	// Live view playback rate (simulated seconds per wall second)
	speed float64

	// Render output directory
	outDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trapsim",
		Short: "stochastic simulation of a modulated nonlinear trap",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trapsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate one trajectory and store it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "run label")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent realizations and pool their statistics",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 16, "number of realizations")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "scan a trap parameter and report steady-state statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepPts, "points", 8, "grid points")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "realizations per point")
	sweepCmd.Flags().StringVar(&planFile, "plan", "", "sweep plan file (yaml, replaces flags and argument)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&phaseWidth, "width", 70, "plot width")
	phaseCmd.Flags().IntVar(&phaseHeight, "height", 20, "plot height")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render PNG plots for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outDir, "out", "plots", "output directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored trajectory to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run to stdout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the integration as it runs",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "simulated seconds per wall second")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		RunE:  benchSolver,
	}

	precisionCmd := &cobra.Command{
		Use:   "precision",
		Short: "compare float64 and float32 stage arithmetic",
		RunE:  comparePrecision,
	}
	addSimFlags(precisionCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, sweepCmd, listCmd, plotCmd, phaseCmd,
		spectrumCmd, renderCmd, exportCSVCmd, exportJSONCmd, liveCmd, benchCmd,
		precisionCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.Int64Var(&seed, "seed", 0, "random seed (0 derives from the clock)")
	f.StringVar(&scratch, "scratch", "float64", "stage arithmetic precision (float64, float32)")
	f.Float64Var(&q0, "q0", config.DefaultQ, "initial position")
	f.Float64Var(&v0, "v0", 0.0, "initial velocity")
	f.Float64Var(&mass, "mass", 1.0, "oscillator mass")
	f.Float64Var(&gamma0, "gamma0", config.DefaultGamma0, "damping rate")
	f.Float64Var(&omega0, "omega0", config.DefaultOmega0, "trap frequency")
	f.Float64Var(&noiseAmp, "noise", config.DefaultNoiseAmp, "noise amplitude")
	f.Float64Var(&alpha, "alpha", 0.0, "cubic stiffening coefficient")
	f.Float64Var(&beta, "beta", 0.0, "quintic softening coefficient")
	f.Float64Var(&doubleAmp, "double-amp", 0.0, "parametric drive amplitude")
	f.Float64Var(&doublePhase, "double-phase", 0.0, "parametric drive phase")
	f.Float64Var(&singleAmp, "single-amp", 0.0, "single-frequency drive amplitude")
	f.Float64Var(&singlePhase, "single-phase", 0.0, "single-frequency drive phase")
	f.Float64Var(&delayPeriods, "delay", 0.0, "feedback delay in trap periods")
	f.StringVar(&pulseKind, "pulse", "flat", "pulse envelope (flat, sine, gauss, ramp)")
	f.Float64Var(&pulseDepth, "pulse-depth", 0.0, "pulse modulation depth")
	f.Float64Var(&pulseFreq, "pulse-freq", 0.0, "pulse frequency (hz)")
	f.Float64Var(&pulsePhase, "pulse-phase", 0.0, "pulse phase")
	f.Float64Var(&pulseCenter, "pulse-center", 0.0, "gaussian pulse center time")
	f.Float64Var(&pulseWidth, "pulse-width", 0.0, "gaussian pulse width")
}

// buildConfig resolves the effective configuration: defaults, then
// preset, then config file, then explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("scratch") {
		cfg.Scratch = scratch
	}
	if f.Changed("q0") {
		cfg.Init.Q = q0
	}
	if f.Changed("v0") {
		cfg.Init.V = v0
	}
	if f.Changed("mass") {
		cfg.Trap.Mass = mass
	}
	if f.Changed("gamma0") {
		cfg.Trap.Gamma0 = gamma0
	}
	if f.Changed("omega0") {
		cfg.Trap.Omega0 = omega0
	}
	if f.Changed("noise") {
		cfg.Trap.NoiseAmp = noiseAmp
	}
	if f.Changed("alpha") {
		cfg.Trap.Alpha = alpha
	}
	if f.Changed("beta") {
		cfg.Trap.Beta = beta
	}
	if f.Changed("double-amp") {
		cfg.Trap.DoubleAmp = doubleAmp
	}
	if f.Changed("double-phase") {
		cfg.Trap.DoublePhase = doublePhase
	}
	if f.Changed("single-amp") {
		cfg.Trap.SingleAmp = singleAmp
	}
	if f.Changed("single-phase") {
		cfg.Trap.SinglePhase = singlePhase
	}
	if f.Changed("delay") {
		cfg.Trap.DelayPeriods = delayPeriods
	}
	if f.Changed("pulse") {
		cfg.Pulse.Kind = pulseKind
	}
	if f.Changed("pulse-depth") {
		cfg.Pulse.Depth = pulseDepth
	}
	if f.Changed("pulse-freq") {
		cfg.Pulse.Freq = pulseFreq
	}
	if f.Changed("pulse-phase") {
		cfg.Pulse.Phase = pulsePhase
	}
	if f.Changed("pulse-center") {
		cfg.Pulse.Center = pulseCenter
	}
	if f.Changed("pulse-width") {
		cfg.Pulse.Width = pulseWidth
	}

	return cfg, nil
}

// expConfig turns a resolved file configuration into a runnable one.
func expConfig(cfg *config.Config) (experiment.Config, error) {
	sc, err := sde.ParseScratch(cfg.Scratch)
	if err != nil {
		return experiment.Config{}, err
	}
	sd := cfg.Seed
	if sd == 0 {
		sd = time.Now().UnixNano()
	}
	return experiment.Config{
		Params:  cfg.TrapParams(),
		Pulse:   cfg.PulseSpec(),
		Dt:      cfg.Dt,
		Steps:   cfg.Steps,
		Seed:    sd,
		Scratch: sc,
		Q0:      cfg.Init.Q,
		V0:      cfg.Init.V,
	}, nil
}

func progressBar(done, total int) {
	filled, pct := 0, 0
	if total > 0 {
		filled = barWidth * done / total
		pct = 100 * done / total
	}
	fmt.Printf("\r[%s%s] %3d%%", strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled), pct)
	if done >= total {
		fmt.Println()
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ec, err := expConfig(cfg)
	if err != nil {
		return err
	}
	ec.Progress = progressBar

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("integrating %d steps (dt=%g, seed=%d)...\n", ec.Steps, ec.Dt, ec.Seed)

	result, err := experiment.Run(ec)
	if err != nil {
		fmt.Println()
		return err
	}

	name := label
	if name == "" {
		name = preset
	}
	runID, err := st.Save(storage.RunMetadata{
		Label:   name,
		Seed:    ec.Seed,
		Dt:      ec.Dt,
		Steps:   ec.Steps,
		Scratch: ec.Scratch.String(),
		Params:  ec.Params.Map(),
		Pulse: storage.PulseInfo{
			Kind:   cfg.Pulse.Kind,
			Depth:  cfg.Pulse.Depth,
			Freq:   cfg.Pulse.Freq,
			Phase:  cfg.Pulse.Phase,
			Center: cfg.Pulse.Center,
			Width:  cfg.Pulse.Width,
		},
		Metrics: result.Metrics,
	}, &storage.Trajectory{
		Times: result.Times,
		Q:     result.Q,
		V:     result.V,
		DW:    result.DW,
		Pulse: result.Pulse,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Q))
	fmt.Println("\nmetrics:")

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ec, err := expConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d realizations (seeds %d..%d)...\n", numRuns, ec.Seed, ec.Seed+int64(numRuns)-1)
	start := time.Now()

	results, err := experiment.NewEnsemble(ec, numRuns, ec.Seed).Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := experiment.Aggregate(results)

	fmt.Printf("completed in %v\n\n", elapsed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUNS\tVAR_Q\tVAR_V\tVAR_X\tVAR_Y\tENERGY")
	fmt.Fprintf(w, "%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
		stats.Runs, stats.VarQ, stats.VarV, stats.VarX, stats.VarY, stats.MeanEnergy)
	if err := w.Flush(); err != nil {
		return err
	}

	if stats.VarY > 0 {
		fmt.Printf("\nquadrature ratio var_x/var_y: %.4f\n", stats.VarX/stats.VarY)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	var plan *experiment.Plan
	if planFile != "" {
		loaded, err := experiment.LoadPlan(planFile)
		if err != nil {
			return err
		}
		plan = loaded
	} else {
		if len(args) != 1 {
			return fmt.Errorf("parameter argument required without --plan")
		}
		plan = &experiment.Plan{Param: args[0], From: sweepFrom, To: sweepTo, Points: sweepPts, Runs: sweepRuns}
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ec, err := expConfig(cfg)
	if err != nil {
		return err
	}

	if plan.Name != "" {
		fmt.Printf("plan: %s\n", plan.Name)
	}
	fmt.Printf("sweeping %s over [%g, %g] (%d points, %d runs each)...\n",
		plan.Param, plan.From, plan.To, plan.Points, plan.Runs)
	start := time.Now()

	points, err := plan.Run(context.Background(), ec)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tVAR_Q\tVAR_V\tVAR_X\tVAR_Y\tENERGY\n", strings.ToUpper(plan.Param))
	for _, p := range points {
		fmt.Fprintf(w, "%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			p.Value, p.Stats.VarQ, p.Stats.VarV, p.Stats.VarX, p.Stats.VarY, p.Stats.MeanEnergy)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tSTEPS\tDT\tSCRATCH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%s\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Scratch,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Q) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(traj.Q))

	graph := asciigraph.Plot(traj.Q,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position q"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(traj.V,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity v"),
	)
	fmt.Println(graph)

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Q) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("q: [%.3f, %.3f]  v: [%.3f, %.3f]\n\n",
		floats.Min(traj.Q), floats.Max(traj.Q),
		floats.Min(traj.V), floats.Max(traj.V))

	fmt.Println(analysis.Portrait(traj.Q, traj.V, phaseWidth, phaseHeight))
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	ps, df := analysis.PowerSpectrum(traj.Q, meta.Dt)
	if ps == nil {
		return fmt.Errorf("not enough data for a spectrum")
	}

	fmt.Printf("power spectrum: %s\n\n", meta.ID)

	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (q)"),
	)
	fmt.Println(graph)
	fmt.Println()

	peak := analysis.DominantFrequency(ps, df)
	fmt.Printf("dominant frequency: %.4f hz\n", peak)
	if peak > 0 {
		fmt.Printf("period: %.4f s\n", 1/peak)
	}
	if w0, ok := meta.Params["omega0"]; ok && w0 > 0 {
		fmt.Printf("trap frequency: %.4f hz\n", w0/(2*math.Pi))
	}

	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Q) == 0 {
		return fmt.Errorf("no data to render")
	}

	dir := filepath.Join(outDir, runID)

	path := filepath.Join(dir, "trajectory.png")
	if err := export.Trajectory(path, traj.Times, traj.Q); err != nil {
		return err
	}
	fmt.Println(path)

	path = filepath.Join(dir, "phase.png")
	if err := export.Phase(path, traj.Q, traj.V); err != nil {
		return err
	}
	fmt.Println(path)

	ps, df := analysis.PowerSpectrum(traj.Q, meta.Dt)
	if ps != nil {
		path = filepath.Join(dir, "spectrum.png")
		if err := export.Spectrum(path, ps, df); err != nil {
			return err
		}
		fmt.Println(path)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportCSV(args[0], os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], os.Stdout)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ec, err := expConfig(cfg)
	if err != nil {
		return err
	}

	name := preset
	if name == "" {
		name = "trapsim"
	}
	m, err := viz.NewModel(name, ec, speed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	base := config.DefaultConfig()

	dts := []float64{1e-4, 1e-3, 1e-2}
	counts := []int{10000, 100000}

	fmt.Println("benchmarking integrator")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRATCH\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, sc := range []sde.Scratch{sde.Float64, sde.Float32} {
		for _, d := range dts {
			for _, n := range counts {
				ec := experiment.Config{
					Params:  base.TrapParams(),
					Pulse:   base.PulseSpec(),
					Dt:      d,
					Steps:   n,
					Seed:    42,
					Scratch: sc,
					Q0:      base.Init.Q,
				}

				result, err := experiment.Run(ec)
				if err != nil {
					return err
				}

				stepsPerSec := float64(n) / result.Elapsed.Seconds()
				fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\n",
					sc, d, n, result.Elapsed.Round(time.Microsecond), stepsPerSec)
			}
		}
	}

	return w.Flush()
}

func comparePrecision(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	ec, err := expConfig(cfg)
	if err != nil {
		return err
	}

	ec.Scratch = sde.Float64
	r64, err := experiment.Run(ec)
	if err != nil {
		return err
	}

	ec.Scratch = sde.Float32
	r32, err := experiment.Run(ec)
	if err != nil {
		return err
	}

	maxDQ, maxDV := 0.0, 0.0
	for i := range r64.Q {
		maxDQ = math.Max(maxDQ, math.Abs(r64.Q[i]-r32.Q[i]))
		maxDV = math.Max(maxDV, math.Abs(r64.V[i]-r32.V[i]))
	}

	fmt.Printf("steps: %d  dt: %g  seed: %d\n\n", ec.Steps, ec.Dt, ec.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCRATCH\tTIME\tVAR_Q\tENERGY")
	fmt.Fprintf(w, "float64\t%v\t%.6g\t%.6g\n",
		r64.Elapsed.Round(time.Microsecond), r64.Metrics["var_q"], r64.Metrics["mean_energy"])
	fmt.Fprintf(w, "float32\t%v\t%.6g\t%.6g\n",
		r32.Elapsed.Round(time.Microsecond), r32.Metrics["var_q"], r32.Metrics["mean_energy"])
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmax |dq|: %.3e\n", maxDQ)
	fmt.Printf("max |dv|: %.3e\n", maxDV)
	return nil
}
