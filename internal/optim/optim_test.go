package optim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/optim"
)

func hill(x float64) float64   { return -(x-2)*(x-2) + 5 }
func valley(x float64) float64 { return -hill(x) }

// chapra is 2·sin(x) − x²/10, with a maximum near x = 1.4276.
func chapra(x float64) float64   { return 2*math.Sin(x) - x*x/10 }
func dchapra(x float64) float64  { return 2*math.Cos(x) - x/5 }
func ddchapra(x float64) float64 { return -2*math.Sin(x) - 0.2 }

const chapraX = 1.4275517787645942

func tight(mode optim.Mode) optim.Options {
	o := optim.DefaultOptions()
	o.Mode = mode
	o.Es = 1e-8
	return o
}

var _ = Describe("GoldenSection", func() {
	It("finds the maximum of a downward parabola", func() {
		res, err := optim.GoldenSection(hill, 0, 4, tight(optim.Max))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.X).To(BeNumerically("~", 2, 1e-6))
		Expect(res.FX).To(BeNumerically("~", 5, 1e-9))
	})

	It("finds the minimum of an upward parabola", func() {
		res, err := optim.GoldenSection(valley, 0, 4, tight(optim.Min))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-6))
		Expect(res.FX).To(BeNumerically("~", -5, 1e-9))
	})

	It("stops early at the default 1% tolerance", func() {
		res, err := optim.GoldenSection(hill, 0, 4, optim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Estimate).To(BeNumerically("<", 1))
		Expect(res.X).To(BeNumerically("~", 2, 0.05))
		Expect(res.Iterations).To(BeNumerically("<", 20))
	})

	It("locates the textbook maximum", func() {
		res, err := optim.GoldenSection(chapra, 0, 4, tight(optim.Max))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", chapraX, 1e-6))
		Expect(res.FX).To(BeNumerically("~", 1.7757, 1e-4))
	})

	It("accepts a reversed bracket", func() {
		res, err := optim.GoldenSection(hill, 4, 0, tight(optim.Max))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-6))
	})

	It("runs every iteration in fixed-count mode", func() {
		opts := optim.DefaultOptions()
		opts.FixedCount = true
		opts.MaxIter = 30
		res, err := optim.GoldenSection(hill, 0, 4, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterations).To(Equal(30))
		Expect(res.X).To(BeNumerically("~", 2, 1e-5))
	})

	It("requires an objective", func() {
		_, err := optim.GoldenSection(nil, 0, 4, optim.DefaultOptions())
		Expect(err).To(MatchError(numeric.ErrMissingFunc))
	})
})

var _ = Describe("ParabolicInterpolation", func() {
	It("hits the vertex of a parabola in one step", func() {
		res, err := optim.ParabolicInterpolation(hill, 0, 1, 4, optim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-12))
		Expect(res.Converged).To(BeTrue())
	})

	It("converges on the textbook problem", func() {
		opts := optim.DefaultOptions()
		opts.Es = 1e-6
		res, err := optim.ParabolicInterpolation(chapra, 0, 1, 4, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", chapraX, 1e-5))
	})

	It("keeps iterating while the middle point stays put", func() {
		well := func(x float64) float64 { return x*x*x*x - 3*x + 1 }
		res, err := optim.ParabolicInterpolation(well, -1, 1, 2, tight(optim.Min))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterations).To(BeNumerically(">", 1))
		Expect(res.X).To(BeNumerically("~", math.Cbrt(0.75), 1e-6))
	})

	It("sorts unordered guesses", func() {
		res, err := optim.ParabolicInterpolation(valley, 4, 0, 1, tight(optim.Min))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-12))
	})

	It("reports collinear guesses as degenerate", func() {
		line := func(x float64) float64 { return 2 * x }
		_, err := optim.ParabolicInterpolation(line, 0, 1, 2, optim.DefaultOptions())
		Expect(err).To(MatchError(numeric.ErrDegenerate))
	})

	It("rejects a vertex of the wrong kind for the mode", func() {
		var zero optim.Options
		res, err := optim.ParabolicInterpolation(valley, 0, 1, 4.5, zero)
		Expect(err).To(MatchError(optim.ErrWrongCurvature))
		Expect(err).To(MatchError(numeric.ErrDegenerate))
		Expect(res.Converged).To(BeFalse())

		res, err = optim.ParabolicInterpolation(hill, 0, 1, 4, tight(optim.Min))
		Expect(err).To(MatchError(optim.ErrWrongCurvature))
		Expect(res.Converged).To(BeFalse())
	})

	It("finds the minimum once the mode matches", func() {
		res, err := optim.ParabolicInterpolation(valley, 0, 1, 4.5, tight(optim.Min))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X).To(BeNumerically("~", 2, 1e-12))
		Expect(res.Converged).To(BeTrue())
	})

	It("reports repeated guesses as degenerate", func() {
		_, err := optim.ParabolicInterpolation(hill, 1, 1, 3, optim.DefaultOptions())
		Expect(err).To(MatchError(numeric.ErrDegenerate))
	})
})

var _ = Describe("Newton", func() {
	It("runs a fixed number of updates by default", func() {
		opts := optim.DefaultNewtonOptions()
		opts.MaxIter = 7
		res, err := optim.Newton(dchapra, ddchapra, 2.5, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterations).To(Equal(7))
		Expect(res.X).To(BeNumerically("~", chapraX, 1e-10))
		Expect(res.FX).To(BeNumerically("~", 0, 1e-10))
		Expect(optim.IsMaximum(ddchapra, res.X)).To(BeTrue())
	})

	It("stops early in tolerance mode", func() {
		opts := optim.DefaultOptions()
		opts.Es = 1e-6
		res, err := optim.Newton(dchapra, ddchapra, 2.5, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Iterations).To(BeNumerically("<", 10))
	})

	It("fails on vanishing curvature", func() {
		flat := func(x float64) float64 { return 0 }
		_, err := optim.Newton(dchapra, flat, 1, optim.DefaultNewtonOptions())
		Expect(err).To(MatchError(numeric.ErrZeroDerivative))
	})

	It("requires both derivatives", func() {
		_, err := optim.Newton(dchapra, nil, 1, optim.DefaultNewtonOptions())
		Expect(err).To(MatchError(numeric.ErrMissingFunc))
	})
})

var _ = Describe("Bracket", func() {
	It("isolates the global maximum of a multimodal function", func() {
		wavy := func(x float64) float64 { return math.Sin(3*x) + 0.3*x }
		lo, hi, err := optim.Bracket(wavy, 0, 6, 60, optim.Max)
		Expect(err).NotTo(HaveOccurred())
		Expect(hi - lo).To(BeNumerically("~", 0.2, 1e-9))

		res, err := optim.GoldenSection(wavy, lo, hi, tight(optim.Max))
		Expect(err).NotTo(HaveOccurred())
		// sin(3x) peaks at π/6 + 2πk/3; the linear term favours the last peak in range.
		Expect(res.X).To(BeNumerically("~", 4.74, 0.05))
	})

	It("clips at the range ends", func() {
		lo, hi, err := optim.Bracket(func(x float64) float64 { return x }, 0, 1, 10, optim.Max)
		Expect(err).NotTo(HaveOccurred())
		Expect(hi).To(Equal(1.0))
		Expect(lo).To(BeNumerically("~", 0.9, 1e-12))
	})

	It("rejects an empty grid", func() {
		_, _, err := optim.Bracket(hill, 0, 1, 0, optim.Max)
		Expect(err).To(MatchError(numeric.ErrInvalidStep))
	})
})

var _ = Describe("ParseMode", func() {
	DescribeTable("accepted spellings",
		func(in string, want optim.Mode) {
			got, err := optim.ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("max", "max", optim.Max),
		Entry("Max", "Max", optim.Max),
		Entry("min", "min", optim.Min),
		Entry("MINIMIZE", "MINIMIZE", optim.Min),
	)

	It("rejects anything else", func() {
		_, err := optim.ParseMode("sideways")
		Expect(err).To(MatchError(optim.ErrUnknownMode))
	})
})
