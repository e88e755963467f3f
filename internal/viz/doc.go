// Package viz renders solver output in the terminal.
//
//   - [Plot] and [PlotMany]: line charts of trajectories and error series
//   - [Canvas]: braille dot canvas used for phase portraits
//   - [Model]: interactive Bubble Tea session stepping a coupled problem
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset state and parameters
//	Tab   - Select parameter
//	↑/↓   - Tune parameter by ±5%
//	[ ]   - Replay history
//	?     - Show help overlay
package viz
