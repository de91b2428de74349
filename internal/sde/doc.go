// Package sde integrates the stochastic equations of motion of the
// trapped particle with a two-stage Heun (predictor-corrector) scheme.
//
// Each step evaluates the drift twice. The predictor advances the state
// with an Euler step, the corrector re-evaluates the drift at the
// predicted state, and the update averages the two stage increments:
//
//	vK1 = a(qₙ, vₙ, g)·dt + b·(dWₙ + Sₙ·√dt)    qK1 = vₙ·dt
//	vK2 = a(q̂, v̂, g)·dt  + b·(dWₙ - Sₙ·√dt)    qK2 = v̂·dt
//	vₙ₊₁ = vₙ + (vK1+vK2)/2                     qₙ₊₁ = qₙ + (qK1+qK2)/2
//
// where (q̂, v̂) = (qₙ+qK1, vₙ+vK1). The per-step sign Sₙ is drawn
// uniformly from {-1, +1}; the ±Sₙ·√dt perturbation is antithetic
// across the two stages, so it cancels in the averaged update to first
// order and supplies the stochastic Taylor correction that plain Heun
// on dW alone would miss.
//
// The modulation g is evaluated once per step from the squeezing pulse
// and the phase of the trajectory a fixed number of steps in the past,
// and both stages see the same value. The delayed lookup clamps at the
// trajectory origin, so during the first delay window the feedback
// tracks the initial state.
//
// The loop is strictly sequential; step n+1 depends on step n and on
// the delayed history. Parallelism belongs one level up, across
// ensemble members (see the experiment package).
//
// Solve reports three classes of failure: invalid arguments
// (ErrTimestep, ErrStepCount, ErrBufferSize, or a trap parameter
// error), all detected before any buffer is written, and numerical
// divergence (DivergenceError, wrapping ErrDiverged) detected on the
// fly.
package sde
