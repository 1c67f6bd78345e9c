package plot

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// RenderASCII draws every series of f as a terminal line chart. Series are
// plotted against sample index; the caption carries the x range.
func RenderASCII(f *Figure, width, height int) string {
	if f == nil || len(f.Series) == 0 {
		return ""
	}

	data := make([][]float64, 0, len(f.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(f.Series))
	legends := make([]string, 0, len(f.Series))
	for _, s := range f.Series {
		if len(s.Y) == 0 {
			continue
		}
		ys := make([]float64, len(s.Y))
		for i, y := range s.Y {
			if math.IsInf(y, 0) {
				y = math.NaN()
			}
			ys[i] = y
		}
		data = append(data, ys)
		colors = append(colors, ansiFor(s.Color))
		legends = append(legends, s.Label)
	}
	if len(data) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption(f)),
	}
	if hasLabels(legends) {
		opts = append(opts, asciigraph.SeriesLegends(legends...))
	}
	return asciigraph.PlotMany(data, opts...)
}

func caption(f *Figure) string {
	c := f.Title
	if b, ok := f.Bounds(); ok && f.XLabel != "" {
		c = fmt.Sprintf("%s  (%s %.4g..%.4g)", c, f.XLabel, b.XMin, b.XMax)
	}
	if f.Number > 0 {
		c = fmt.Sprintf("Figure %d: %s", f.Number, c)
	}
	return c
}

func hasLabels(labels []string) bool {
	for _, l := range labels {
		if l != "" {
			return true
		}
	}
	return false
}
