package sde

import (
	"errors"
	"fmt"
)

var (
	// ErrTimestep is returned when dt is zero, negative, or not finite.
	ErrTimestep = errors.New("sde: timestep must be positive and finite")

	// ErrStepCount is returned for a negative step count or start index.
	ErrStepCount = errors.New("sde: step count and start index must be non-negative")

	// ErrBufferSize is returned when a caller-supplied slice cannot hold
	// the requested integration range.
	ErrBufferSize = errors.New("sde: buffer too short for requested range")

	// ErrDiverged is returned when the trajectory leaves the set of
	// finite floating point values.
	ErrDiverged = errors.New("sde: trajectory diverged (NaN or Inf detected)")
)

// DivergenceError reports where a trajectory first became non-finite.
// It unwraps to ErrDiverged.
type DivergenceError struct {
	Step int     // index of the first bad sample
	Time float64 // Step*dt
	Q    float64
	V    float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("sde: diverged at step %d (t=%.6g): q=%v v=%v",
		e.Step, e.Time, e.Q, e.V)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }
