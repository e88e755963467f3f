package store

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/numkit/internal/viz"
)

const (
	svgWidth  = 800
	svgHeight = 400
)

var strokes = []string{"#00ff00", "#00bfff", "#ffa500", "#ff4f6d"}

// WriteSVG draws every state component against x as one path on a shared
// viewport. Non-finite samples break the path.
func WriteSVG(w io.Writer, rec Record) error {
	var us, vs []float64
	for i, x := range rec.X {
		for _, v := range rec.Y[i] {
			us = append(us, x)
			vs = append(vs, v)
		}
	}
	vp := viz.Fit(us, vs)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight)

	dim := 0
	if len(rec.Y) > 0 {
		dim = len(rec.Y[0])
	}
	for j := 0; j < dim; j++ {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokes[j%len(strokes)])
		move := true
		for i, x := range rec.X {
			v := rec.Y[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				move = true
				continue
			}
			px := (x - vp.UMin) / (vp.UMax - vp.UMin) * svgWidth
			py := (vp.VMax - v) / (vp.VMax - vp.VMin) * svgHeight
			cmd := " L"
			if move {
				cmd = " M"
				move = false
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, px, py)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
