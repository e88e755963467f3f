package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	PlotWidth  = 72
	PlotHeight = 12
)

// Plot draws one series against its sample index.
func Plot(series []float64, caption string) string {
	if !anyFinite(series) {
		return ""
	}
	return asciigraph.Plot(clean(series),
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several equally long series, each in its own color.
func PlotMany(series [][]float64, caption string) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if anyFinite(s) {
			data = append(data, clean(s))
		}
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(seriesColors[:min(len(data), len(seriesColors))]...),
	)
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Blue,
}

// Log10 maps positive values to their base-10 logarithm; zero and negative
// values become NaN and are skipped by the plots.
func Log10(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			out[i] = math.Log10(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// clean replaces infinities with NaN, which asciigraph leaves blank.
func clean(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func anyFinite(series []float64) bool {
	for _, v := range series {
		if finite(v) {
			return true
		}
	}
	return false
}
