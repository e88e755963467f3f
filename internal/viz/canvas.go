package viz

import (
	"math"
	"strings"
)

const brailleBlank = 0x2800

// Braille cells are 2×4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2×4 dots, so a canvas of
// Width×Height cells has (2·Width)×(4·Height) addressable dots.
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return 2 * c.Width, 4 * c.Height }

// Set lights the dot at (x, y); y grows downwards. Out-of-range dots are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// DrawLine draws a dot line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a rectangle of the (u, v) plane onto a canvas.
type Viewport struct {
	UMin, UMax float64
	VMin, VMax float64
}

// Fit returns the smallest viewport holding every point, padded by 10% on
// each side. Degenerate extents are widened to 1.
func Fit(us, vs []float64) Viewport {
	vp := Viewport{
		UMin: math.Inf(1), UMax: math.Inf(-1),
		VMin: math.Inf(1), VMax: math.Inf(-1),
	}
	for i := range us {
		if !finite(us[i]) || !finite(vs[i]) {
			continue
		}
		vp.UMin, vp.UMax = math.Min(vp.UMin, us[i]), math.Max(vp.UMax, us[i])
		vp.VMin, vp.VMax = math.Min(vp.VMin, vs[i]), math.Max(vp.VMax, vs[i])
	}
	if vp.UMin > vp.UMax {
		return Viewport{UMin: -1, UMax: 1, VMin: -1, VMax: 1}
	}
	vp.UMin, vp.UMax = pad(vp.UMin, vp.UMax)
	vp.VMin, vp.VMax = pad(vp.VMin, vp.VMax)
	return vp
}

func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 0.5, hi + 0.5
	}
	return lo - span/10, hi + span/10
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Project maps (u, v) to dot coordinates on c. v grows upwards.
func (vp Viewport) Project(c *Canvas, u, v float64) (int, int) {
	w, h := c.Dots()
	x := (u - vp.UMin) / (vp.UMax - vp.UMin) * float64(w-1)
	y := (vp.VMax - v) / (vp.VMax - vp.VMin) * float64(h-1)
	return int(math.Round(x)), int(math.Round(y))
}

// Polyline draws the path through the points (us[i], vs[i]). Non-finite
// points break the path.
func (c *Canvas) Polyline(vp Viewport, us, vs []float64) {
	prevOK := false
	var px, py int
	for i := range us {
		if !finite(us[i]) || !finite(vs[i]) {
			prevOK = false
			continue
		}
		x, y := vp.Project(c, us[i], vs[i])
		if prevOK {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, prevOK = x, y, true
	}
}
