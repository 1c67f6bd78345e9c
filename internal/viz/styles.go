package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title  lipgloss.Style
	axis   lipgloss.Style
	label  lipgloss.Style
	hint   lipgloss.Style
	grid   lipgloss.Style
	panel  lipgloss.Style
	status lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title),
		axis:  lipgloss.NewStyle().Foreground(t.Muted),
		label: lipgloss.NewStyle().Foreground(t.Text),
		hint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		grid: lipgloss.NewStyle().Foreground(t.Grid),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		status: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title),
	}
}

func seriesStyle(c color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B))))
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(v, 255))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
