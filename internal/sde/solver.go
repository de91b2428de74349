package sde

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/trapsim/internal/trap"
)

// progressTicks caps how often a progress callback fires per solve.
const progressTicks = 50

// Scratch selects the floating point width of the per-step working
// variables (stage slopes, midpoint state, modulation). The trajectory
// buffers are always float64; Float32 rounds only the intermediate
// arithmetic, which is useful for checking how sensitive a run is to
// accumulated round-off.
type Scratch int

const (
	Float64 Scratch = iota
	Float32
)

func (s Scratch) String() string {
	if s == Float32 {
		return "float32"
	}
	return "float64"
}

// ParseScratch converts a config or flag value to a Scratch mode.
func ParseScratch(s string) (Scratch, error) {
	switch s {
	case "", "float64", "f64":
		return Float64, nil
	case "float32", "f32":
		return Float32, nil
	}
	return Float64, fmt.Errorf("sde: unknown scratch precision %q", s)
}

// Solver integrates the trap dynamics with a two-stage stochastic Heun
// scheme. A Solver is not safe for concurrent use; create one per
// goroutine.
type Solver struct {
	rng      *rand.Rand
	signs    []float64
	scratch  Scratch
	progress func(done, total int)
}

// Option configures a Solver.
type Option func(*Solver)

// WithSeed seeds the solver's internal sign generator.
func WithSeed(seed int64) Option {
	return func(s *Solver) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the random source used for the antithetic signs.
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) { s.rng = rng }
}

// WithSigns fixes the per-step antithetic signs instead of drawing
// them. The slice must cover every step of a solve; values are used as
// given, so anything outside {-1, +1} changes the scheme.
func WithSigns(signs []float64) Option {
	return func(s *Solver) { s.signs = signs }
}

// WithScratch selects the working precision of the stepping loop.
func WithScratch(sc Scratch) Option {
	return func(s *Solver) { s.scratch = sc }
}

// WithProgress installs a callback invoked at most 50 times per solve
// with the number of completed and total steps.
func WithProgress(fn func(done, total int)) Option {
	return func(s *Solver) { s.progress = fn }
}

// New returns a Solver with float64 scratch and a time-seeded sign
// generator.
func New(opts ...Option) *Solver {
	s := &Solver{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		scratch: Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve advances the trajectory in place from index start through
// start+steps. q and v hold position and velocity; q[start] and
// v[start] are the initial state and entries above start are
// overwritten. dw supplies one Wiener increment per step and pulse the
// squeezing modulation envelope, both indexed by absolute step.
//
// Entries of q and v below start are never written, but the delayed
// feedback may read them, so callers continuing a previous segment must
// leave them intact.
//
// On divergence the error identifies the first non-finite sample; the
// buffers keep the partial trajectory up to that point.
func (s *Solver) Solve(q, v []float64, p trap.Params, dt float64, dw, pulse []float64, start, steps int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w (got %v)", ErrTimestep, dt)
	}
	if steps < 0 {
		return fmt.Errorf("%w (steps=%d)", ErrStepCount, steps)
	}
	if start < 0 {
		return fmt.Errorf("%w (start=%d)", ErrStepCount, start)
	}
	if len(q) != len(v) {
		return fmt.Errorf("%w (len(q)=%d, len(v)=%d)", ErrBufferSize, len(q), len(v))
	}
	if need := start + steps + 1; len(q) < need {
		return fmt.Errorf("%w (trajectory: have %d, need %d)", ErrBufferSize, len(q), need)
	}
	if need := start + steps; len(dw) < need {
		return fmt.Errorf("%w (noise: have %d, need %d)", ErrBufferSize, len(dw), need)
	}
	if need := start + steps; len(pulse) < need {
		return fmt.Errorf("%w (pulse: have %d, need %d)", ErrBufferSize, len(pulse), need)
	}
	if steps == 0 {
		return nil
	}

	signs := s.signs
	if signs == nil {
		signs = s.drawSigns(steps)
	} else if len(signs) < steps {
		return fmt.Errorf("%w (signs: have %d, need %d)", ErrBufferSize, len(signs), steps)
	}

	delay := p.DelaySteps(dt)

	stride := 0
	if s.progress != nil {
		stride = (steps + progressTicks - 1) / progressTicks
	}

	if s.scratch == Float32 {
		return s.solve32(q, v, p, dt, dw, pulse, start, steps, delay, stride, signs)
	}
	return s.solve64(q, v, p, dt, dw, pulse, start, steps, delay, stride, signs)
}

// drawSigns samples steps independent fair signs from {-1, +1}.
func (s *Solver) drawSigns(steps int) []float64 {
	signs := make([]float64, steps)
	for i := range signs {
		if s.rng.Int63()&1 == 0 {
			signs[i] = 1
		} else {
			signs[i] = -1
		}
	}
	return signs
}

// Signs returns the n antithetic signs a solver seeded with seed would
// draw for a single n-step solve. Callers that split one logical run
// across several Solve calls can pin the stream up front with WithSigns
// and slice it per segment; the result matches the unsplit run exactly.
func Signs(n int, seed int64) []float64 {
	s := &Solver{rng: rand.New(rand.NewSource(seed))}
	return s.drawSigns(n)
}

func (s *Solver) solve64(q, v []float64, p trap.Params, dt float64, dw, pulse []float64, start, steps, delay, stride int, signs []float64) error {
	sqdt := math.Sqrt(dt)
	end := start + steps

	for n := start; n < end; n++ {
		fb := n - delay
		if fb < 0 {
			fb = 0
		}
		// One modulation value per step, shared by both stages.
		g := pulse[n] + p.Feedback(q[fb], v[fb])

		sn := signs[n-start] * sqdt

		vk1 := p.Accel(q[n], v[n], g)*dt + p.NoiseAmp*(dw[n]+sn)
		qk1 := v[n] * dt
		vh := v[n] + vk1
		qh := q[n] + qk1

		vk2 := p.Accel(qh, vh, g)*dt + p.NoiseAmp*(dw[n]-sn)
		qk2 := vh * dt

		v[n+1] = v[n] + 0.5*(vk1+vk2)
		q[n+1] = q[n] + 0.5*(qk1+qk2)

		if !finite(q[n+1]) || !finite(v[n+1]) {
			return &DivergenceError{Step: n + 1, Time: float64(n+1) * dt, Q: q[n+1], V: v[n+1]}
		}
		if stride > 0 {
			s.tick(n-start+1, steps, stride)
		}
	}
	return nil
}

// p32 mirrors the trap parameters in the reduced working precision so
// the float32 loop does not convert on every step.
type p32 struct {
	gamma0      float32
	w2          float32
	noise       float32
	alpha       float32
	beta        float32
	doubleAmp   float32
	doublePhase float32
	singleAmp   float32
	singlePhase float32
	omega0      float32
}

func (s *Solver) solve32(q, v []float64, p trap.Params, dt float64, dw, pulse []float64, start, steps, delay, stride int, signs []float64) error {
	pp := p32{
		gamma0:      float32(p.Gamma0),
		w2:          float32(p.Omega0 * p.Omega0),
		noise:       float32(p.NoiseAmp),
		alpha:       float32(p.Alpha),
		beta:        float32(p.Beta),
		doubleAmp:   float32(p.DoubleAmp),
		doublePhase: float32(p.DoublePhase),
		singleAmp:   float32(p.SingleAmp),
		singlePhase: float32(p.SinglePhase),
		omega0:      float32(p.Omega0),
	}
	dt32 := float32(dt)
	sqdt := float32(math.Sqrt(dt))
	end := start + steps

	for n := start; n < end; n++ {
		fb := n - delay
		if fb < 0 {
			fb = 0
		}
		phi := atan2f(float32(v[fb])/pp.omega0, float32(q[fb]))
		g := float32(pulse[n]) +
			pp.doubleAmp*sinf(2*phi+pp.doublePhase) +
			pp.singleAmp*sinf(phi+pp.singlePhase)

		sn := float32(signs[n-start]) * sqdt
		qn := float32(q[n])
		vn := float32(v[n])

		vk1 := pp.accel(qn, vn, g)*dt32 + pp.noise*(float32(dw[n])+sn)
		qk1 := vn * dt32
		vh := vn + vk1
		qh := qn + qk1

		vk2 := pp.accel(qh, vh, g)*dt32 + pp.noise*(float32(dw[n])-sn)
		qk2 := vh * dt32

		// The trajectory itself stays double; only the stage
		// arithmetic is rounded.
		v[n+1] = v[n] + float64(0.5*(vk1+vk2))
		q[n+1] = q[n] + float64(0.5*(qk1+qk2))

		if !finite(q[n+1]) || !finite(v[n+1]) {
			return &DivergenceError{Step: n + 1, Time: float64(n+1) * dt, Q: q[n+1], V: v[n+1]}
		}
		if stride > 0 {
			s.tick(n-start+1, steps, stride)
		}
	}
	return nil
}

func (p p32) accel(q, v, g float32) float32 {
	aq := p.alpha * q
	bq := p.beta * q
	bq2 := bq * bq
	return -p.gamma0*v + g*(-p.w2*q+aq*aq*aq-bq2*bq2*bq)
}

// tick fires the progress callback every stride steps and once more at
// completion, keeping the total number of calls within progressTicks.
func (s *Solver) tick(done, total, stride int) {
	if done%stride == 0 || done == total {
		s.progress(done, total)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
