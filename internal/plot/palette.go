package plot

import (
	"image/color"

	"github.com/guptarohit/asciigraph"
)

type paletteEntry struct {
	rgba color.RGBA
	ansi asciigraph.AnsiColor
}

var palette = []paletteEntry{
	{color.RGBA{R: 31, G: 119, B: 180, A: 255}, asciigraph.Blue},
	{color.RGBA{R: 214, G: 39, B: 40, A: 255}, asciigraph.Red},
	{color.RGBA{R: 44, G: 160, B: 44, A: 255}, asciigraph.Green},
	{color.RGBA{R: 255, G: 127, B: 14, A: 255}, asciigraph.Orange},
	{color.RGBA{R: 148, G: 103, B: 189, A: 255}, asciigraph.Purple},
	{color.RGBA{R: 23, G: 190, B: 207, A: 255}, asciigraph.Cyan},
}

// ansiFor maps c to the nearest palette color's terminal equivalent.
func ansiFor(c color.RGBA) asciigraph.AnsiColor {
	best, bestDist := palette[0].ansi, -1
	for _, p := range palette {
		dr := int(c.R) - int(p.rgba.R)
		dg := int(c.G) - int(p.rgba.G)
		db := int(c.B) - int(p.rgba.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.ansi, d
		}
	}
	return best
}
