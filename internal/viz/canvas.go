package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille pixel grid. Its resolution is (Width*2) x (Height*4)
// dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight give the dot resolution.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// DrawCircle outlines a circle of radius r dots with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx-x, cy+y)
		c.Set(cx+x, cy-y)
		c.Set(cx-x, cy-y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx+y, cy-x)
		c.Set(cx-y, cy-x)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillDisc lights every dot within r of the centre.
func (c *Canvas) FillDisc(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
