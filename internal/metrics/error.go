package metrics

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

func deviation(y, ref numeric.Vector) (float64, bool) {
	if ref == nil {
		return 0, false
	}
	return y.Sub(ref).Norm(), true
}

// MaxAbsError is the largest deviation from the reference over all samples.
type MaxAbsError struct {
	max float64
}

func NewMaxAbsError() *MaxAbsError { return &MaxAbsError{} }

func (m *MaxAbsError) Name() string { return "max_abs_error" }

func (m *MaxAbsError) Observe(_ float64, y, ref numeric.Vector) {
	if d, ok := deviation(y, ref); ok {
		m.max = math.Max(m.max, d)
	}
}

func (m *MaxAbsError) Value() float64 { return m.max }
func (m *MaxAbsError) Reset()         { m.max = 0 }

// FinalError is the deviation at the last observed sample.
type FinalError struct {
	last float64
}

func NewFinalError() *FinalError { return &FinalError{} }

func (f *FinalError) Name() string { return "final_error" }

func (f *FinalError) Observe(_ float64, y, ref numeric.Vector) {
	if d, ok := deviation(y, ref); ok {
		f.last = d
	}
}

func (f *FinalError) Value() float64 { return f.last }
func (f *FinalError) Reset()         { f.last = 0 }

// RMSError is the root mean square deviation over all samples.
type RMSError struct {
	sumSq   float64
	samples int
}

func NewRMSError() *RMSError { return &RMSError{} }

func (r *RMSError) Name() string { return "rms_error" }

func (r *RMSError) Observe(_ float64, y, ref numeric.Vector) {
	if d, ok := deviation(y, ref); ok {
		r.sumSq += d * d
		r.samples++
	}
}

func (r *RMSError) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSError) Reset() {
	r.sumSq = 0
	r.samples = 0
}
