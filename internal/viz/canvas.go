package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cell dots, indexed [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Cell owners other than series indices.
const (
	ownerNone = -1
	ownerGrid = -2
)

// Canvas is a braille bitmap of Width x Height cells, 2 x 4 dots each.
// Each cell remembers which series drew into it last.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	owner         [][]int
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([][]rune, h),
		owner:  make([][]int, h),
	}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
		c.owner[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// DotsX and DotsY are the canvas size in dots.
func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

// Set lights dot (x, y) for owner; out-of-range dots are ignored. Grid dots
// never take a cell away from a series.
func (c *Canvas) Set(x, y, owner int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= pixelMap[y%4][x%2]
	if owner != ownerGrid || c.owner[row][col] == ownerNone {
		c.owner[row][col] = owner
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.cells[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
			c.owner[i][j] = ownerNone
		}
	}
}

// DrawLine draws with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1, owner int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, owner)
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

// Render styles each cell by its owner: series[i] for series i, grid for
// grid dots. Runs of equal owner share one styled segment.
func (c *Canvas) Render(series []lipgloss.Style, grid lipgloss.Style) string {
	styleFor := func(owner int) (lipgloss.Style, bool) {
		switch {
		case owner == ownerGrid:
			return grid, true
		case owner >= 0 && owner < len(series):
			return series[owner], true
		}
		return lipgloss.Style{}, false
	}

	var b strings.Builder
	for i, row := range c.cells {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.owner[i][j] == c.owner[i][start] {
				continue
			}
			seg := string(row[start:j])
			if st, ok := styleFor(c.owner[i][start]); ok {
				seg = st.Render(seg)
			}
			b.WriteString(seg)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String is the canvas without styling.
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
