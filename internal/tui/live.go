// Package tui is the interactive viewer: a menu to pick a scenario and
// a live screen that steps its simulator forward and renders voxel
// occupancy on a braille canvas.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/scenario"
)

type screen int

const (
	screenMenu screen = iota
	screenLive
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the root bubbletea program.
type Model struct {
	screen screen
	names  []string
	cursor int

	spec    scenario.Spec
	sim     *engine.Simulator
	canvas  *Canvas
	width   int
	height  int

	dt         float64
	paused     bool
	clampTotal int
	err        error
}

// NewModel starts on the scenario menu. If scenarioName is non-empty
// and registered, the live screen is entered immediately.
func NewModel(scenarioName string) Model {
	m := Model{
		names:  scenario.List(),
		width:  80,
		height: 24,
		dt:     0.05,
	}
	if scenarioName != "" {
		if spec, err := scenario.Get(scenarioName); err == nil {
			m.startLive(spec)
		}
	}
	return m
}

func (m *Model) startLive(spec scenario.Spec) {
	voxels, err := spec.Build(spec.Defaults())
	if err != nil {
		m.err = err
		return
	}
	m.spec = spec
	m.sim = engine.New(voxels)
	m.canvas = NewCanvas(m.width/2, (m.height-6)/4)
	m.clampTotal = 0
	m.screen = screenLive
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.canvas != nil {
			m.canvas = NewCanvas(m.width/2, (m.height-6)/4)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.screen == screenLive && !m.paused && m.sim != nil {
			clamped, err := m.sim.Advance(m.sim.Time() + m.dt)
			m.clampTotal += clamped
			if err != nil {
				m.err = err
				m.paused = true
			}
			m.draw()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.names) == 0 {
				return m, nil
			}
			spec, err := scenario.Get(m.names[m.cursor])
			if err != nil {
				m.err = err
				return m, nil
			}
			m.startLive(spec)
		}
	case screenLive:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.screen = screenMenu
			m.sim = nil
		case " ", "p":
			m.paused = !m.paused
		}
	}
	return m, nil
}

func (m *Model) draw() {
	if m.canvas == nil || m.sim == nil {
		return
	}
	m.canvas.Clear()

	voxels := m.sim.Voxels()
	if len(voxels) == 0 {
		return
	}

	subWidth := m.canvas.Width * 2
	colWidth := subWidth / len(voxels)
	if colWidth < 1 {
		colWidth = 1
	}

	maxCount := 1
	for _, v := range voxels {
		for _, n := range v.Molecules() {
			if n > maxCount {
				maxCount = n
			}
		}
	}

	subHeight := m.canvas.Height * 4
	for i, v := range voxels {
		mols := v.Molecules()
		if len(mols) == 0 {
			continue
		}
		height := mols[0] * subHeight / maxCount
		x := i*colWidth + colWidth/2
		m.canvas.DrawVBar(x, height)
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenLive:
		return m.viewLive()
	}
	return ""
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("select a scenario") + "\n\n")
	for i, name := range m.names {
		cursor := "  "
		style := dimStyle
		if i == m.cursor {
			cursor = "> "
			style = cursorStyle
		}
		b.WriteString(cursor + style.Render(name) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓ move · enter select · q quit"))
	return b.String()
}

func (m Model) viewLive() string {
	var stats strings.Builder
	stats.WriteString(titleStyle.Render(m.spec.Name) + "\n\n")
	stats.WriteString(dimStyle.Render("time:  ") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.Time())) + "\n")
	stats.WriteString(dimStyle.Render("seed:  ") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Seed())) + "\n")
	status := statusOK.Render("running")
	if m.paused {
		status = statusWarn.Render("paused")
	}
	stats.WriteString(dimStyle.Render("state: ") + status + "\n")
	stats.WriteString(dimStyle.Render("clamps:") + " " + valueStyle.Render(fmt.Sprintf("%d", m.clampTotal)) + "\n")
	if m.err != nil {
		stats.WriteString("\n" + statusWarn.Render(m.err.Error()) + "\n")
	}

	canvasView := ""
	if m.canvas != nil {
		canvasView = panelStyle.Render(m.canvas.String())
	}

	return canvasView + "\n" + panelStyle.Render(stats.String()) + "\n" +
		dimStyle.Render("space pause · esc menu · q quit")
}
