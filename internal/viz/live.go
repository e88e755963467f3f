package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/numkit/internal/models"
	"github.com/san-kum/numkit/internal/numeric"
	"github.com/san-kum/numkit/internal/ode"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	frameRate       = 30
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Builder returns the problem for a set of model parameters.
type Builder func(params map[string]float64) (models.SystemProblem, error)

type TickMsg time.Time

// Snapshot is one recorded sample.
type Snapshot struct {
	X      float64
	Y      numeric.Vector
	Energy float64
}

// Model steps a coupled problem with a fixed-step stepper and draws the
// phase portrait of its first two components. The problem's end point is
// ignored; the run continues until quit.
type Model struct {
	name          string
	build         Builder
	stepper       ode.SystemStepper
	prob          models.SystemProblem
	h             float64
	stepsPerFrame int

	x float64
	y numeric.Vector

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	canvas   *Canvas
	history  []Snapshot
	playHead int
	running  bool
	showHelp bool
	err      error
}

// NewModel builds the initial problem from params and prepares a session.
func NewModel(name string, build Builder, stepper ode.SystemStepper, params map[string]float64, h float64, stepsPerFrame int) (Model, error) {
	if err := validate(h); err != nil {
		return Model{}, err
	}
	prob, err := build(params)
	if err != nil {
		return Model{}, err
	}
	if prob.Dim() < 1 {
		return Model{}, fmt.Errorf("%w: empty state", numeric.ErrDimensionMismatch)
	}

	current := make(map[string]float64, len(params))
	initial := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		current[k], initial[k] = v, v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := Model{
		name:          name,
		build:         build,
		stepper:       stepper,
		prob:          prob,
		h:             h,
		stepsPerFrame: max(stepsPerFrame, 1),
		params:        current,
		initialParams: initial,
		paramKeys:     keys,
		canvas:        NewCanvas(width, height),
		history:       make([]Snapshot, 0, historyCapacity),
		playHead:      -1,
		running:       true,
	}
	m.restart()
	return m, nil
}

func validate(h float64) error {
	if !(h > 0) || !finite(h) {
		return fmt.Errorf("%w: h=%g", numeric.ErrInvalidStep, h)
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles keys and advances the solver on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				for i := 0; i < m.stepsPerFrame && m.err == nil; i++ {
					m.step()
				}
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

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

// adjustParam scales the selected parameter and rebuilds the equations,
// keeping the current state.
func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	old := m.params[key]
	m.params[key] = old * factor

	prob, err := m.build(m.params)
	if err != nil {
		m.params[key] = old
		m.err = err
		return
	}
	m.prob = prob
}

func (m *Model) step() {
	next := m.stepper.Step(m.prob.Sys, m.x, m.y, m.h)
	if !next.IsValid() {
		m.err = numeric.Wrap("viz.step", len(m.history), m.x, numeric.ErrInvalidState)
		m.running = false
		return
	}
	m.x += m.h
	m.y = next
	m.record()
}

func (m *Model) record() {
	snap := Snapshot{X: m.x, Y: m.y.Clone()}
	if m.prob.Energy != nil {
		snap.Energy = m.prob.Energy(m.y)
	}
	m.history = append(m.history, snap)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub moves the replay position through the recorded history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead = max(m.playHead+dir, 0)
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) restart() {
	m.x = m.prob.X0
	m.y = numeric.Vector(m.prob.Y0).Clone()
	m.history = m.history[:0]
	m.playHead = -1
	m.err = nil
	m.record()
}

// reset restores the initial parameters and state.
func (m *Model) reset() {
	for k, v := range m.initialParams {
		m.params[k] = v
	}
	if prob, err := m.build(m.params); err == nil {
		m.prob = prob
	}
	m.restart()
}

// current returns the sample on screen: the replay position or the latest.
func (m Model) current() Snapshot {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return Snapshot{X: m.x, Y: m.y, Energy: m.history[len(m.history)-1].Energy}
}

// trail returns the phase-plane path up to the sample on screen.
func (m Model) trail() ([]float64, []float64) {
	end := len(m.history)
	if m.playHead >= 0 {
		end = m.playHead + 1
	}
	us := make([]float64, end)
	vs := make([]float64, end)
	for i, s := range m.history[:end] {
		us[i] = s.Y[0]
		if len(s.Y) > 1 {
			vs[i] = s.Y[1]
		} else {
			vs[i] = s.X
		}
	}
	if len(m.history[0].Y) == 1 {
		us, vs = vs, us
	}
	return us, vs
}

func (m Model) draw() string {
	m.canvas.Clear()
	us, vs := m.trail()
	m.canvas.Polyline(Fit(us, vs), us, vs)
	return m.canvas.String()
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return Bad.Render("ERROR: " + m.err.Error())
	case m.playHead != -1 && !m.running:
		return fmt.Sprintf("REPLAY PAUSED (%d/%d)", m.playHead+1, len(m.history))
	case m.playHead != -1:
		return fmt.Sprintf("REPLAYING (%d/%d)", m.playHead+1, len(m.history))
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the phase portrait beside the run statistics.
func (m Model) View() string {
	cur := m.current()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if m.prob.Energy != nil && len(m.history) > 1 {
		energy := make([]float64, len(m.history))
		for i, snap := range m.history {
			energy[i] = snap.Energy
		}
		chart := asciigraph.Plot(energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("x") + valueStyle.Render(fmt.Sprintf("%.3f", cur.X)) + "\n")
	s.WriteString(labelStyle.Render("h") + valueStyle.Render(fmt.Sprintf("%g", m.h)) + "\n")
	for i, v := range cur.Y {
		s.WriteString(labelStyle.Render(fmt.Sprintf("y%d", i+1)) + valueStyle.Render(fmt.Sprintf("%.5f", v)) + "\n")
	}
	if m.prob.Energy != nil {
		s.WriteString(labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.5f", cur.Energy)) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.4g", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\n[ ]:Replay Tab:Param ↑↓:Tune"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.draw()), statsStyle.Render(s.String()))
	if m.showHelp {
		return help + "\n" + view
	}
	return view
}

const help = `Space     pause / resume
R         reset state and parameters
Q         quit
Tab       select next parameter
Up/K      increase parameter by 5%
Down/J    decrease parameter by 5%
[ ]       step back / forward through history
?         toggle this help`
