// Package viz renders a live terminal view of a running integration.
//
// The view is a Bubble Tea program built around [Model]: each animation
// frame advances the stochastic integrator by a chunk of steps and plots
// the trailing window of the position trace with asciigraph, alongside a
// stats panel (time, state, energy, feedback phase). Both the Wiener
// increments and the antithetic stage signs are drawn up front, so
// pausing and replaying retrace the exact same path.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Replay from the initial state
//	Q     - Quit
package viz
