package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/clothsim/internal/config"
)

var presetInfo = map[string]string{
	"calm":    "still air",
	"breeze":  "light gusts",
	"gale":    "heavy flutter",
	"curtain": "pinned on the side",
	"hammock": "two rows pulled apart",
	"stiff":   "many solver sweeps",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// param is one editable field of the config screen.
type param struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"nx", 1, func(c *config.Config) float64 { return float64(c.NX) }, func(c *config.Config, v float64) { c.NX = int(v) }},
	{"ny", 1, func(c *config.Config) float64 { return float64(c.NY) }, func(c *config.Config, v float64) { c.NY = int(v) }},
	{"size", 1, func(c *config.Config) float64 { return c.Size }, func(c *config.Config, v float64) { c.Size, c.Spacing = v, 0 }},
	{"iterations", 1, func(c *config.Config) float64 { return float64(c.ConstraintIters) }, func(c *config.Config, v float64) { c.ConstraintIters = int(v) }},
	{"gravity", 0.5, func(c *config.Config) float64 { return -c.Gravity[1] }, func(c *config.Config, v float64) { c.Gravity[1] = -v }},
	{"wind x", 1, func(c *config.Config) float64 { return c.Wind[0] }, func(c *config.Config, v float64) { c.Wind[0] = v }},
	{"wind z", 1, func(c *config.Config) float64 { return c.Wind[2] }, func(c *config.Config, v float64) { c.Wind[2] = v }},
	{"variation", 0.05, func(c *config.Config) float64 { return c.WindVariation }, func(c *config.Config, v float64) { c.WindVariation = v }},
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	width, height int
	liveModel     Model
	live          bool
}

func NewInteractiveApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		width:   width,
		height:  height,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}
	switch m.state {
	case stateSim:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "e" {
			m.cfg = m.liveModel.cfg.Clone()
			m.state, m.paramCursor, m.err = stateConfig, 0, ""
			return m, nil
		}
		next, cmd := m.liveModel.Update(msg)
		m.liveModel = next.(Model)
		return m, cmd
	case stateMenu:
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.menuKey(key)
		}
	case stateConfig:
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg, err := config.GetPreset(m.selected)
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.cfg, m.err = cfg, ""
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				p.set(m.cfg, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		if m.live {
			m.state, m.err = stateSim, ""
			return m, nil
		}
		m.state, m.err = stateMenu, ""
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", p.get(m.cfg))
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m model) start() (model, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	if m.live {
		m.liveModel.Reconfigure(m.cfg)
		m.state, m.err = stateSim, ""
		return m, nil
	}
	m.liveModel = NewModel(m.cfg, m.selected)
	m.liveModel.editable = true
	if m.width > 0 && m.height > 0 {
		m.liveModel.resize(m.width, m.height)
	}
	m.state, m.err, m.live = stateSim, "", true
	return m, m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	p := newPalette(Themes[0])
	var b strings.Builder
	b.WriteString("\n\n    " + p.header.Render("CLOTHSIM") + "\n    " + p.muted.Render("verlet cloth") + "\n\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-10s %s", name, presetInfo[name])
		if i == m.cursor {
			b.WriteString("    " + p.key.Render("▸ ") + p.active.Render(line) + "\n")
		} else {
			b.WriteString("      " + p.muted.Render(line) + "\n")
		}
	}
	b.WriteString("\n    " + keyHints(p, "j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	if m.err != "" {
		b.WriteString("\n    " + p.warn.Render(m.err) + "\n")
	}
	return b.String()
}

func (m model) viewConfig() string {
	p := newPalette(Themes[0])
	var b strings.Builder
	b.WriteString("\n\n    " + p.header.Render(strings.ToUpper(m.selected)) + "\n    " + p.muted.Render(presetInfo[m.selected]) + "\n\n")
	for i, prm := range params {
		val := fmt.Sprintf("%8.3g", prm.get(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString("    " + p.key.Render("▸ ") + p.value.Render(fmt.Sprintf("%-11s", prm.name)) + p.active.Render(val) + "\n")
		} else {
			b.WriteString("      " + p.muted.Render(fmt.Sprintf("%-11s%s", prm.name, val)) + "\n")
		}
	}
	action := "start"
	if m.live {
		action = "apply"
	}
	b.WriteString("\n    " + keyHints(p, "j/k", "select", "h/l", "adjust", "enter", "edit", "s", action, "esc", "back") + "\n")
	if m.err != "" {
		b.WriteString("\n    " + p.warn.Render(m.err) + "\n")
	}
	return b.String()
}

// RunInteractive opens the preset menu.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
