package ode_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

// oscillator is y1' = y2, y2' = -y1 with solution (cos x, -sin x) for y0 = (1, 0).
func oscillator() ode.System {
	return ode.NewSystem(
		func(a ode.Args) float64 { return a.Y(1) },
		func(a ode.Args) float64 { return -a.Y(0) },
	)
}

var _ = Describe("SolveSystem", func() {
	Context("with SystemRK4 on the harmonic oscillator", func() {
		var traj ode.SystemTrajectory

		BeforeEach(func() {
			var err error
			traj, err = ode.SolveSystem(ode.NewSystemRK4(), 0, 2, []float64{1, 0}, 0.1, oscillator())
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts at the initial condition", func() {
			Expect(traj.X[0]).To(Equal(0.0))
			Expect(traj.Y[0]).To(Equal(numeric.Vector{1, 0}))
		})

		It("ends exactly at xf", func() {
			x, _ := traj.Last()
			Expect(x).To(Equal(2.0))
			Expect(traj.Len()).To(Equal(21))
		})

		It("tracks cos and -sin", func() {
			for i, x := range traj.X {
				Expect(traj.Y[i][0]).To(BeNumerically("~", math.Cos(x), 1e-5))
				Expect(traj.Y[i][1]).To(BeNumerically("~", -math.Sin(x), 1e-5))
			}
		})

		It("exposes per-component series", func() {
			c := traj.Component(0)
			Expect(c).To(HaveLen(traj.Len()))
			Expect(c[0]).To(Equal(1.0))
		})
	})

	Context("with SystemEuler", func() {
		It("matches scalar Euler on a decoupled system", func() {
			sys := ode.NewSystem(
				func(a ode.Args) float64 { return a.Y(0) },
				func(a ode.Args) float64 { return -2 * a.Y(1) },
			)
			traj, err := ode.SolveSystem(ode.NewSystemEuler(), 0, 1, []float64{1, 1}, 0.1, sys)
			Expect(err).NotTo(HaveOccurred())

			first, err := ode.Solve(ode.NewEuler(), 0, 1, 1, 0.1, func(x, y float64) float64 { return y })
			Expect(err).NotTo(HaveOccurred())
			second, err := ode.Solve(ode.NewEuler(), 0, 1, 1, 0.1, func(x, y float64) float64 { return -2 * y })
			Expect(err).NotTo(HaveOccurred())

			Expect(traj.Component(0)).To(Equal(first.Y))
			Expect(traj.Component(1)).To(Equal(second.Y))
		})

		It("loses energy more slowly with RK4", func() {
			energy := func(y numeric.Vector) float64 { return y[0]*y[0] + y[1]*y[1] }

			eu, err := ode.SolveSystem(ode.NewSystemEuler(), 0, 10, []float64{1, 0}, 0.05, oscillator())
			Expect(err).NotTo(HaveOccurred())
			rk, err := ode.SolveSystem(ode.NewSystemRK4(), 0, 10, []float64{1, 0}, 0.05, oscillator())
			Expect(err).NotTo(HaveOccurred())

			_, yEu := eu.Last()
			_, yRK := rk.Last()
			Expect(math.Abs(energy(yRK) - 1)).To(BeNumerically("<", math.Abs(energy(yEu)-1)))
		})
	})

	Context("stage isolation", func() {
		It("gives every equation the same stage arguments", func() {
			// Each equation reads the other component; if arguments were
			// updated in place between equations the result would be asymmetric.
			sys := ode.NewSystem(
				func(a ode.Args) float64 { return a.Y(1) },
				func(a ode.Args) float64 { return a.Y(0) },
			)
			y := ode.NewSystemRK4().Step(sys, 0, numeric.Vector{1, 1}, 0.1)
			Expect(y[0]).To(Equal(y[1]))
			Expect(y[0]).To(BeNumerically("~", math.Exp(0.1), 1e-6))
		})

		It("does not modify the input state", func() {
			y0 := numeric.Vector{1, 0}
			ode.NewSystemRK4().Step(oscillator(), 0, y0, 0.1)
			Expect(y0).To(Equal(numeric.Vector{1, 0}))
		})
	})

	Context("with invalid input", func() {
		It("rejects a length mismatch", func() {
			_, err := ode.SolveSystem(ode.NewSystemRK4(), 0, 1, []float64{1, 0, 0}, 0.1, oscillator())
			Expect(err).To(MatchError(numeric.ErrDimensionMismatch))
		})

		It("rejects duplicate component indices", func() {
			sys := ode.System{
				{Index: 0, F: func(a ode.Args) float64 { return 0 }},
				{Index: 0, F: func(a ode.Args) float64 { return 0 }},
			}
			Expect(sys.Validate(2)).To(MatchError(numeric.ErrDimensionMismatch))
		})

		It("rejects a nil equation", func() {
			sys := ode.System{{Index: 0}}
			Expect(sys.Validate(1)).To(MatchError(numeric.ErrMissingFunc))
		})

		It("rejects a non-positive step", func() {
			_, err := ode.SolveSystem(ode.NewSystemEuler(), 0, 1, []float64{1, 0}, 0, oscillator())
			Expect(err).To(MatchError(numeric.ErrInvalidStep))
		})

		It("returns only the initial sample for an empty interval", func() {
			traj, err := ode.SolveSystem(ode.NewSystemRK4(), 1, 1, []float64{1, 0}, 0.1, oscillator())
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(Equal(1))
		})
	})
})
