package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var formats = map[string]bool{".png": true, ".svg": true, ".pdf": true}

// Save renders f to path; the extension (.png, .svg or .pdf) picks the
// format. Non-finite points are skipped.
func Save(f *Figure, path string) error {
	return SaveSize(f, path, DefaultWidth, DefaultHeight)
}

func SaveSize(f *Figure, path string, width, height vg.Length) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return fmt.Errorf("plot: unsupported format %q", ext)
	}

	p, err := build(f)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	return p.Save(width, height, path)
}

func build(f *Figure) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Title.Padding = vg.Points(8)
	p.X.Padding = vg.Points(6)
	p.Y.Padding = vg.Points(6)

	if f.Grid {
		p.Add(plotter.NewGrid())
	}

	for _, s := range f.Series {
		pts := make(plotter.XYs, 0, len(s.X))
		for i := range s.X {
			if finite(s.X[i]) && finite(s.Y[i]) {
				pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plot: %w", err)
		}
		line.LineStyle.Color = s.Color
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}
	p.Legend.Top = true
	return p, nil
}
