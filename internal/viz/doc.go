// Package viz is an interactive terminal viewer for plot figures, built on
// Bubble Tea and drawn on a braille canvas.
//
// # Key Bindings
//
//	Arrows / hjkl  - Pan
//	Mouse drag     - Pan
//	+ / -, wheel   - Zoom in / out
//	G              - Toggle grid
//	T              - Cycle color themes
//	R              - Reset view
//	Q / Esc        - Quit
package viz
