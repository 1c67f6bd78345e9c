package viz

import (
	"math"

	"github.com/san-kum/ltisim/internal/plot"
)

// Viewport is the visible data window.
type Viewport struct {
	XMin, XMax, YMin, YMax float64
}

// fit frames b with 5% vertical headroom. Flat ranges get unit height.
func fit(b plot.Bounds) Viewport {
	v := Viewport(b)
	if v.XMax == v.XMin {
		v.XMin, v.XMax = v.XMin-0.5, v.XMax+0.5
	}
	if v.YMax == v.YMin {
		v.YMin, v.YMax = v.YMin-0.5, v.YMax+0.5
	}
	pad := 0.05 * (v.YMax - v.YMin)
	v.YMin -= pad
	v.YMax += pad
	return v
}

// Pan shifts the window by fractions of its span.
func (v Viewport) Pan(fx, fy float64) Viewport {
	dx := fx * (v.XMax - v.XMin)
	dy := fy * (v.YMax - v.YMin)
	return Viewport{v.XMin + dx, v.XMax + dx, v.YMin + dy, v.YMax + dy}
}

// Zoom scales the span about the center; factor < 1 zooms in.
func (v Viewport) Zoom(factor float64) Viewport {
	cx, cy := (v.XMin+v.XMax)/2, (v.YMin+v.YMax)/2
	hx, hy := (v.XMax-v.XMin)/2*factor, (v.YMax-v.YMin)/2*factor
	if hx < 1e-12 || hy < 1e-12 {
		return v
	}
	return Viewport{cx - hx, cx + hx, cy - hy, cy + hy}
}

// toDots maps a data point to canvas dots, y growing downward. Far
// off-screen points are clamped to keep line drawing bounded.
func (v Viewport) toDots(x, y float64, w, h int) (int, int) {
	fx := (x - v.XMin) / (v.XMax - v.XMin) * float64(w-1)
	fy := (v.YMax - y) / (v.YMax - v.YMin) * float64(h-1)
	return clampDot(fx, w), clampDot(fy, h)
}

func clampDot(f float64, n int) int {
	lim := float64(2 * n)
	return int(math.Round(math.Max(-lim, math.Min(lim, f))))
}
