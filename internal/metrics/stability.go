package metrics

import (
	"math"

	"github.com/san-kum/numkit/internal/numeric"
)

// Stability is the fraction of samples whose components all stay within
// threshold in absolute value. A non-finite component counts as a violation.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string {
	return "stability"
}

func (s *Stability) Observe(_ float64, y, _ numeric.Vector) {
	s.samples++
	for _, val := range y {
		if !(math.Abs(val) <= s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
