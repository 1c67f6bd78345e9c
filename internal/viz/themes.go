package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the viewer's chrome palette. Series keep their own colors.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Grid   lipgloss.Color
	Border lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:   "dark",
		Title:  lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Grid:   lipgloss.Color("#333344"),
		Border: lipgloss.Color("#444466"),
	}

	ThemeLight = Theme{
		Name:   "light",
		Title:  lipgloss.Color("#0055aa"),
		Text:   lipgloss.Color("#111111"),
		Muted:  lipgloss.Color("#777777"),
		Grid:   lipgloss.Color("#cccccc"),
		Border: lipgloss.Color("#999999"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#008800"),
		Grid:   lipgloss.Color("#003300"),
		Border: lipgloss.Color("#005500"),
	}
)

var Themes = []Theme{ThemeDark, ThemeLight, ThemeRetro}
