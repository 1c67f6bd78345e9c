// Package plot holds figures of sampled signals and renders them to the
// terminal (asciigraph) or to image files (gonum/plot).
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"
)

var ErrLengthMismatch = errors.New("plot: x and y lengths differ")

type Series struct {
	X, Y  []float64
	Color color.RGBA
	Label string
}

type Figure struct {
	Number int
	Title  string
	XLabel string
	YLabel string
	Grid   bool
	Series []Series
}

// Session numbers the figures it creates 1, 2, 3, ...
type Session struct {
	mu   sync.Mutex
	last int
}

func NewSession() *Session { return &Session{} }

func (s *Session) NewFigure() *Figure {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return &Figure{Number: s.last}
}

// Add appends a series. A zero Color takes the next palette color.
func (f *Figure) Add(s Series) error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(s.X), len(s.Y))
	}
	if s.Color == (color.RGBA{}) {
		s.Color = palette[len(f.Series)%len(palette)].rgba
	}
	f.Series = append(f.Series, s)
	return nil
}

// Line is Add with a palette color.
func (f *Figure) Line(x, y []float64, label string) error {
	return f.Add(Series{X: x, Y: y, Label: label})
}

type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// Bounds is the range of all finite points; ok is false when there are none.
func (f *Figure) Bounds() (b Bounds, ok bool) {
	b = Bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, s := range f.Series {
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			if !finite(x) || !finite(y) {
				continue
			}
			b.XMin, b.XMax = math.Min(b.XMin, x), math.Max(b.XMax, x)
			b.YMin, b.YMax = math.Min(b.YMin, y), math.Max(b.YMax, y)
			ok = true
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
