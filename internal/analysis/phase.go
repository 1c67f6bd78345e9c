package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ltisim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Portrait is the trajectory of two state components of a run.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

// PhasePortrait extracts x[xIdx] against x[yIdx] from the recorded states.
func PhasePortrait(res *dynamo.Result, xIdx, yIdx int) (*Portrait, error) {
	if res == nil || len(res.States) == 0 {
		return nil, fmt.Errorf("analysis: run has no recorded states")
	}
	dim := len(res.States[0])
	if xIdx < 0 || yIdx < 0 || xIdx >= dim || yIdx >= dim {
		return nil, fmt.Errorf("%w: indices (%d, %d) for state dimension %d",
			dynamo.ErrDimensionMismatch, xIdx, yIdx, dim)
	}

	p := &Portrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, len(res.States)),
	}
	for i, x := range res.States {
		p.Points[i] = Point{X: x[xIdx], Y: x[yIdx]}
	}
	return p, nil
}

// PhasePortraitToASCII draws the portrait on a width x height character
// grid with axes where they fall inside the view.
func PhasePortraitToASCII(p *Portrait, width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)

	// Halved coordinates keep spans near MaxFloat64 finite.
	col := func(x float64) int {
		return int((x/2 - minX/2) / (maxX/2 - minX/2) * float64(width-1))
	}
	row := func(y float64) int {
		return height - 1 - int((y/2-minY/2)/(maxY/2-minY/2)*float64(height-1))
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		c, r := col(pt.X), row(pt.Y)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range grid {
			if c < 0 || c >= width {
				break
			}
			if grid[r][c] == ' ' {
				grid[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; r >= 0 && r < height && c < width; c++ {
			if grid[r][c] == ' ' {
				grid[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// pad widens [lo, hi] by 10% on each side, clamped to the float64 range. A
// degenerate range becomes unit width; an empty one (no finite points)
// becomes [-1, 1].
func pad(lo, hi float64) (float64, float64) {
	if lo > hi {
		return -1, 1
	}
	half := hi/2 - lo/2
	if half == 0 {
		half = 0.5
	}
	lo = math.Max(lo-0.2*half, -math.MaxFloat64)
	hi = math.Min(hi+0.2*half, math.MaxFloat64)
	return lo, hi
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
