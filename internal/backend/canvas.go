package backend

import "strings"

// Braille patterns pack 2x4 dots per terminal cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotMask = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas. Cell size is Width x Height; the
// drawable resolution in subpixels is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	grid          [][]rune
	colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.grid = make([][]rune, h)
	c.colors = make([][]string, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the subpixel at (x, y) with an optional color hint for the
// containing cell. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(dotMask[y%4][x%2])
	if color != "" {
		c.colors[row][col] = color
	}
}

// Clear resets every cell.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.colors[i][j] = ""
		}
	}
}

// Line draws a line between two subpixel coordinates using Bresenham's
// algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, color string) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, color)
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

// Rows returns the rendered cell rows with per-cell color hints applied
// by the caller-provided paint function.
func (c *Canvas) Rows(paint func(s, color string) string) []string {
	rows := make([]string, c.Height)
	for i, row := range c.grid {
		var b strings.Builder
		for j, r := range row {
			cell := string(r)
			if paint != nil && c.colors[i][j] != "" {
				cell = paint(cell, c.colors[i][j])
			}
			b.WriteString(cell)
		}
		rows[i] = b.String()
	}
	return rows
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
