package tui

import "strings"

// Braille patterns pack 2x4 dots into one Unicode glyph:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-packed drawing surface: Width x Height glyphs,
// each addressable at sub-pixel resolution (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a sub-pixel at (x, y); out-of-bounds coordinates are
// silently ignored.
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

// Clear resets every glyph to empty.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawVBar lights a vertical bar of sub-pixel height h (from the
// bottom) at sub-pixel column x, clamped to the canvas's sub-pixel
// height.
func (c *Canvas) DrawVBar(x, h int) {
	maxH := c.Height * 4
	if h > maxH {
		h = maxH
	}
	for y := maxH - h; y < maxH; y++ {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
