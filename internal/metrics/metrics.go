// Package metrics accumulates scalar summaries over solver trajectories.
package metrics

import "github.com/san-kum/numkit/internal/numeric"

// Metric observes one trajectory sample at a time. ref is the reference
// (usually exact) state at x and may be nil for metrics that do not use it.
type Metric interface {
	Name() string
	Observe(x float64, y, ref numeric.Vector)
	Value() float64
	Reset()
}

// Set evaluates several metrics over the same samples.
type Set []Metric

func (s Set) Observe(x float64, y, ref numeric.Vector) {
	for _, m := range s {
		m.Observe(x, y, ref)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}
