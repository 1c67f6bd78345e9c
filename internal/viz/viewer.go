package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ltisim/internal/plot"
)

const (
	panStep   = 0.1
	zoomIn    = 0.8
	zoomOut   = 1.25
	yAxisW    = 10
	chromeRow = 6
)

// Model is the Bubble Tea model of the figure viewer.
type Model struct {
	fig      *plot.Figure
	home     Viewport
	view     Viewport
	hasData  bool
	grid     bool
	theme    int
	st       styles
	width    int
	height   int
	dragging bool
	dragX    int
	dragY    int
}

func New(fig *plot.Figure) Model {
	m := Model{
		fig:    fig,
		grid:   fig.Grid,
		st:     newStyles(Themes[0]),
		width:  80,
		height: 24,
	}
	if b, ok := fig.Bounds(); ok {
		m.home = fit(b)
		m.view = m.home
		m.hasData = true
	}
	return m
}

// Run shows fig full screen until the user quits.
func Run(fig *plot.Figure) error {
	p := tea.NewProgram(New(fig), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Viewport() Viewport { return m.view }
func (m Model) Grid() bool         { return m.grid }
func (m Model) Theme() Theme       { return Themes[m.theme] }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.view = m.view.Pan(-panStep, 0)
	case "right", "l":
		m.view = m.view.Pan(panStep, 0)
	case "up", "k":
		m.view = m.view.Pan(0, panStep)
	case "down", "j":
		m.view = m.view.Pan(0, -panStep)
	case "+", "=":
		m.view = m.view.Zoom(zoomIn)
	case "-", "_":
		m.view = m.view.Zoom(zoomOut)
	case "g":
		m.grid = !m.grid
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.st = newStyles(Themes[m.theme])
	case "r":
		m.view = m.home
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view = m.view.Zoom(zoomIn)
	case msg.Button == tea.MouseButtonWheelDown:
		m.view = m.view.Zoom(zoomOut)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging, m.dragX, m.dragY = true, msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		cw, ch := m.canvasSize()
		dx, dy := msg.X-m.dragX, msg.Y-m.dragY
		m.view = m.view.Pan(-float64(dx)/float64(cw), float64(dy)/float64(ch))
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
	return m
}

func (m Model) canvasSize() (int, int) {
	return max(m.width-yAxisW-2, 10), max(m.height-chromeRow, 4)
}

func (m Model) draw() *Canvas {
	cw, ch := m.canvasSize()
	c := NewCanvas(cw, ch)
	if !m.hasData {
		return c
	}
	w, h := c.DotsX(), c.DotsY()

	if m.grid {
		for i := 1; i < 5; i++ {
			gx := i * (w - 1) / 5
			gy := i * (h - 1) / 5
			for y := 0; y < h; y += 2 {
				c.Set(gx, y, ownerGrid)
			}
			for x := 0; x < w; x += 2 {
				c.Set(x, gy, ownerGrid)
			}
		}
	}

	for si, s := range m.fig.Series {
		prevOK := false
		var px, py int
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				prevOK = false
				continue
			}
			cx, cy := m.view.toDots(x, y, w, h)
			if prevOK {
				c.DrawLine(px, py, cx, cy, si)
			} else {
				c.Set(cx, cy, si)
			}
			px, py, prevOK = cx, cy, true
		}
	}
	return c
}

func (m Model) View() string {
	var b strings.Builder

	title := m.fig.Title
	if m.fig.Number > 0 {
		title = fmt.Sprintf("Figure %d: %s", m.fig.Number, title)
	}
	b.WriteString(m.st.title.Render(title))
	b.WriteByte('\n')

	if !m.hasData {
		b.WriteString(m.st.hint.Render("no finite data to show  (q quit)"))
		return b.String()
	}

	seriesStyles := make([]lipgloss.Style, len(m.fig.Series))
	for i, s := range m.fig.Series {
		seriesStyles[i] = seriesStyle(s.Color)
	}
	rows := strings.Split(strings.TrimSuffix(m.draw().Render(seriesStyles, m.st.grid), "\n"), "\n")

	cw, _ := m.canvasSize()
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = formatTick(m.view.YMax)
		case len(rows) / 2:
			label = formatTick((m.view.YMin + m.view.YMax) / 2)
		case len(rows) - 1:
			label = formatTick(m.view.YMin)
		}
		b.WriteString(m.st.axis.Render(fmt.Sprintf("%*s │", yAxisW-2, label)))
		b.WriteString(row)
		b.WriteByte('\n')
	}

	b.WriteString(m.st.axis.Render(strings.Repeat(" ", yAxisW-1) + "└" + strings.Repeat("─", cw)))
	b.WriteByte('\n')

	left, right := formatTick(m.view.XMin), formatTick(m.view.XMax)
	mid := m.fig.XLabel
	gap := max(cw-len(left)-len(right)-len(mid), 2)
	b.WriteString(strings.Repeat(" ", yAxisW))
	b.WriteString(m.st.axis.Render(left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right))
	b.WriteByte('\n')

	legend := make([]string, 0, len(m.fig.Series))
	for i, s := range m.fig.Series {
		if s.Label == "" {
			continue
		}
		legend = append(legend, seriesStyles[i].Render("━━ ")+m.st.label.Render(s.Label))
	}
	if m.fig.YLabel != "" {
		legend = append([]string{m.st.label.Render("y: " + m.fig.YLabel)}, legend...)
	}
	b.WriteString(strings.Repeat(" ", yAxisW) + strings.Join(legend, "   "))
	b.WriteByte('\n')

	grid := "off"
	if m.grid {
		grid = "on"
	}
	b.WriteString(m.st.hint.Render("arrows/drag pan · +/-/wheel zoom · g grid · t theme · r reset · q quit"))
	b.WriteString("  " + m.st.status.Render(fmt.Sprintf("[grid %s · %s]", grid, Themes[m.theme].Name)))
	return b.String()
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
