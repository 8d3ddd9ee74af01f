package viz

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 45
	historyCapacity = 600
	frameRate       = 60

	// Top-left of the braille grid inside the rendered view, from the
	// canvas style's padding.
	canvasOffsetX = 2
	canvasOffsetY = 1

	orbitStep = 0.08
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea viewer of one cloth.
type Model struct {
	cfg  *config.Config
	name string

	sim     *sim.Simulator
	cloth   *cloth.Cloth
	sag     *metrics.Sag
	stretch *metrics.MaxStretch
	energy  *metrics.KineticEnergy

	canvas        *Canvas
	camera        *Camera
	theme         Theme
	width, height int

	running    bool
	mouseDown  bool
	showHelp   bool
	sagHistory []float64
	history    [][]float64
	pool       *sim.BufferPool
	playHead   int
	status     string
	editable   bool
}

// NewModel builds the cloth described by cfg and frames it with the camera.
func NewModel(cfg *config.Config, name string) Model {
	m := Model{
		cfg:      cfg.Clone(),
		name:     name,
		canvas:   NewCanvas(width, height),
		theme:    Themes[0],
		width:    width,
		height:   height,
		running:  true,
		playHead: -1,
	}
	m.rebuild()
	return m
}

func (m *Model) rebuild() {
	m.cloth = m.cfg.Build()
	gust := forcing.NewGust(m.cfg.WindVector(), m.cfg.WindVariation, m.cfg.Seed)
	m.sim = sim.New(m.cloth, gust)

	m.sag = metrics.NewSag()
	m.stretch = metrics.NewMaxStretch()
	m.energy = metrics.NewKineticEnergy()
	m.sim.AddMetric(m.sag)
	m.sim.AddMetric(m.stretch)
	m.sim.AddMetric(m.energy)

	m.camera = frameCamera(m.cloth)
	m.pool = sim.NewBufferPool(len(m.cloth.Positions()))
	m.sagHistory = make([]float64, 0, historyCapacity)
	m.history = make([][]float64, 0, historyCapacity)
	m.playHead = -1
	m.mouseDown = false
}

// frameCamera points a camera at the middle of where the sheet will hang.
func frameCamera(c *cloth.Cloth) *Camera {
	o := c.Grid().Origin()
	ex, ez := c.ExtentX(), c.ExtentZ()
	span := math.Max(ex, ez)
	target := dynamo.V3(o.X+ex/2, o.Y-span/2, o.Z+ez/2)
	return NewCamera(target, 2.2*math.Max(span, 1e-3))
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.rebuild()
		m.status = "reset"
	case "w":
		m.cloth.SetWindEnabled(!m.cloth.WindEnabled())
	case "left", "h":
		m.camera.Orbit(-orbitStep, 0)
	case "right", "l":
		m.camera.Orbit(orbitStep, 0)
	case "up", "k":
		m.camera.Orbit(0, orbitStep)
	case "down", "j":
		m.camera.Orbit(0, -orbitStep)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "g":
		if m.cloth.PointerActive() {
			m.release()
		} else {
			m.aim(float64(m.canvas.PixelWidth())/2, float64(m.canvas.PixelHeight())/2)
		}
	case "[":
		m.scrub(-1)
	case "]":
		m.scrub(1)
	case "t":
		m.theme = NextTheme(m.theme)
	case "s":
		m.saveSVG()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse grabs with the left button: press casts a ray, drag moves it,
// release lets go.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.camera.ZoomIn()
		return
	case tea.MouseButtonWheelDown:
		m.camera.ZoomOut()
		return
	}

	x, y := m.cellToPixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.mouseDown = true
			m.aim(x, y)
		}
	case tea.MouseActionMotion:
		if m.mouseDown {
			m.aim(x, y)
		}
	case tea.MouseActionRelease:
		if m.mouseDown {
			m.mouseDown = false
			m.release()
		}
	}
}

// cellToPixel maps a terminal cell to the centre of its braille dots.
func (m *Model) cellToPixel(cx, cy int) (float64, float64) {
	return float64((cx-canvasOffsetX)*2) + 1, float64((cy-canvasOffsetY)*4) + 2
}

// aim points the grab ray through canvas pixel (x, y). The cloth only locks
// a particle on its next substep, so a fresh press reports the hit test.
func (m *Model) aim(x, y float64) {
	origin, dir := m.camera.ScreenRay(x, y, m.canvas.PixelWidth(), m.canvas.PixelHeight())
	wasActive := m.cloth.PointerActive()
	m.cloth.SetPointerRay(origin, dir, true)
	if k, _ := m.cloth.Grabbed(); k != cloth.NoGrab {
		m.status = fmt.Sprintf("grabbed particle %d", k)
		return
	}
	if wasActive {
		return
	}
	if hit, ok := m.cloth.HitTestRay(origin, dir); ok {
		m.status = fmt.Sprintf("grabbed particle %d", hit.Index)
	} else {
		m.status = "missed"
	}
}

// Reconfigure moves the viewer to cfg. Settings that leave the sheet's
// topology alone are pushed into the running cloth; anything else rebuilds.
func (m *Model) Reconfigure(cfg *config.Config) (rebuilt bool) {
	next := cfg.Clone()
	if config.NeedsRebuild(m.cfg, next) {
		m.cfg = next
		m.rebuild()
		m.status = "rebuilt"
		return true
	}
	next.ApplyLive(m.cloth, m.sim.Gust())
	m.cfg = next
	m.status = "settings applied"
	return false
}

func (m *Model) release() {
	m.cloth.SetPointerRay(dynamo.Vec3{}, dynamo.Vec3{}, false)
	m.status = "released"
}

func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 2*canvasOffsetX - 2
	ch := h - 2*canvasOffsetY
	if cw < 10 || ch < 5 {
		return
	}
	m.width, m.height = cw, ch
	m.canvas.Resize(cw, ch)
}

func (m *Model) step() {
	m.sim.Advance(1.0 / frameRate)

	m.sagHistory = append(m.sagHistory, m.sag.Current())
	if len(m.sagHistory) > historyCapacity {
		m.sagHistory = m.sagHistory[1:]
	}

	m.history = append(m.history, m.pool.Snapshot(m.cloth.Positions()))
	if len(m.history) > historyCapacity {
		m.pool.Put(m.history[0])
		m.history = m.history[1:]
	}
}

// scrub moves the replay head through recorded frames. Scrubbing past the
// newest frame returns to the live simulation.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead = max(0, m.playHead+dir)
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) positions() []float64 {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.cloth.Positions()
}

func (m *Model) draw() {
	m.canvas.Clear()
	pos := m.positions()
	DrawWireframe(m.canvas, m.camera, pos, m.cloth.Lines())
	if k, _ := m.cloth.Grabbed(); k != cloth.NoGrab && m.playHead == -1 {
		DrawMarker(m.canvas, m.camera, vertex(pos, uint32(k)))
	}
}

func (m *Model) saveSVG() {
	m.draw()
	path := fmt.Sprintf("clothsim_%d.svg", time.Now().Unix())
	if err := os.WriteFile(path, []byte(CanvasToSVG(m.canvas, 4)), 0644); err != nil {
		m.status = "svg: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) View() string {
	m.draw()
	p := newPalette(m.theme)

	status := p.active.Render("RUNNING")
	switch {
	case m.playHead != -1:
		back := m.sim.Time() - float64(len(m.history)-1-m.playHead)/frameRate
		status = p.warn.Render(fmt.Sprintf("REPLAY t=%.2fs", back))
	case !m.running:
		status = p.warn.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(p.header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(p.label.Render(label) + p.value.Render(value) + "\n")
	}
	wind := m.cloth.Wind()
	windState := "off"
	if m.cloth.WindEnabled() {
		windState = "on"
	}
	grab := "none"
	if k, _ := m.cloth.Grabbed(); k != cloth.NoGrab {
		grab = fmt.Sprintf("#%d", k)
	}

	row("grid", fmt.Sprintf("%d x %d", m.cloth.ColumnCount(), m.cloth.RowCount()))
	row("time", fmt.Sprintf("%.2f s", m.sim.Time()))
	row("substeps", fmt.Sprintf("%d", m.cloth.Substeps()))
	row("wind", fmt.Sprintf("%s (%.1f, %.1f, %.1f)", windState, wind.X, wind.Y, wind.Z))
	if g := m.sim.Gust(); g != nil {
		row("gust", ProgressBar(g.Factor(), 20))
	}
	row("sag", fmt.Sprintf("%.4f", m.sag.Current()))
	row("stretch", fmt.Sprintf("%.2f %%", 100*m.stretch.Current()))
	row("energy", fmt.Sprintf("%.4g", m.energy.Current()))
	row("grab", grab)

	if len(m.sagHistory) > 1 {
		chart := asciigraph.Plot(m.sagHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("sag"))
		s.WriteString("\n" + chart + "\n")
	} else {
		s.WriteString("\n" + p.muted.Render(Sparkline(m.sagHistory, 30)) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + p.muted.Render(m.status) + "\n")
	}

	if m.showHelp {
		s.WriteString("\n" + keyHints(p, "space", "pause", "r", "reset", "w", "wind") + "\n")
		s.WriteString(keyHints(p, "hjkl", "orbit", "+/-", "zoom", "g", "grab") + "\n")
		s.WriteString(keyHints(p, "[ ]", "replay", "t", "theme", "s", "svg") + "\n")
		s.WriteString(keyHints(p, "mouse", "drag to pull", "q", "quit") + "\n")
		if m.editable {
			s.WriteString(keyHints(p, "e", "edit settings") + "\n")
		}
	} else {
		s.WriteString("\n" + keyHints(p, "?", "help", "q", "quit") + "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, p.canvas.Render(m.canvas.String()), p.stats.Render(s.String()))
}

// Run opens the viewer full-screen with mouse tracking.
func Run(cfg *config.Config, name string) error {
	_, err := tea.NewProgram(NewModel(cfg, name), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
