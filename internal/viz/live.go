package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trapsim/internal/experiment"
	"github.com/san-kum/trapsim/internal/noise"
	"github.com/san-kum/trapsim/internal/sde"
)

const (
	graphWidth  = 64
	graphHeight = 12
	envHeight   = 4
	windowSize  = 600
	frameRate   = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	envStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 0)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(38)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the integration incrementally, one chunk of steps per
// animation frame, and renders the trailing window of the trajectory.
type Model struct {
	label string
	cfg   experiment.Config

	q, v  []float64
	dw    []float64
	pulse []float64
	signs []float64

	n            int // completed steps
	stepsPerTick int
	running      bool
	err          error
}

// NewModel draws the full run's Wiener increments and antithetic stage
// signs up front, so pausing, resuming, and replaying retrace the
// identical path, and a live run reproduces a stored run with the same
// seed sample for sample.
func NewModel(label string, cfg experiment.Config, speed float64) (Model, error) {
	pulse, err := cfg.Pulse.Samples(cfg.Steps, cfg.Dt)
	if err != nil {
		return Model{}, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return Model{}, err
	}
	if speed <= 0 {
		speed = 1
	}

	q := make([]float64, cfg.Steps+1)
	v := make([]float64, cfg.Steps+1)
	q[0], v[0] = cfg.Q0, cfg.V0

	perTick := int(speed / (cfg.Dt * frameRate))
	if perTick < 1 {
		perTick = 1
	}

	return Model{
		label:        label,
		cfg:          cfg,
		q:            q,
		v:            v,
		dw:           noise.Wiener(cfg.Steps, cfg.Dt, uint64(cfg.Seed)),
		pulse:        pulse,
		signs:        sde.Signs(cfg.Steps, cfg.Seed),
		stepsPerTick: perTick,
		running:      true,
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

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
		}
	case TickMsg:
		if m.running && m.err == nil && m.n < m.cfg.Steps {
			chunk := m.stepsPerTick
			if rest := m.cfg.Steps - m.n; chunk > rest {
				chunk = rest
			}
			// Continue the trajectory in place; delayed feedback
			// keeps reading the already-integrated prefix, and the
			// pinned sign stream is sliced at the frontier so the
			// chunking never changes the path.
			solver := sde.New(sde.WithSigns(m.signs[m.n:]), sde.WithScratch(m.cfg.Scratch))
			err := solver.Solve(m.q, m.v, m.cfg.Params, m.cfg.Dt, m.dw, m.pulse, m.n, chunk)
			if err != nil {
				m.err = err
			} else {
				m.n += chunk
			}
		}
		return m, tick()
	}
	return m, nil
}

// reset rewinds to the initial state but keeps the increments and the
// sign stream, so a replay retraces the same path.
func (m *Model) reset() {
	m.n = 0
	m.err = nil
	m.running = true
	m.q[0], m.v[0] = m.cfg.Q0, m.cfg.V0
}

func (m Model) View() string {
	status := "RUNNING"
	switch {
	case m.err != nil:
		status = errStyle.Render(fmt.Sprintf("DIVERGED: %v", m.err))
	case m.n >= m.cfg.Steps:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}

	var left strings.Builder
	window := tailWindow(m.q[:m.n+1])
	if len(window) > 1 {
		chart := asciigraph.Plot(window,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("position"))
		left.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.n > 1 {
		env := tailWindow(m.pulse[:m.n])
		chart := asciigraph.Plot(env,
			asciigraph.Height(envHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("drive envelope"))
		left.WriteString(envStyle.Render(chart))
	}

	t := float64(m.n) * m.cfg.Dt
	total := float64(m.cfg.Steps) * m.cfg.Dt
	qn, vn := m.q[m.n], m.v[m.n]

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.label)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f s", t, total)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.n, m.cfg.Steps)) + "\n")
	s.WriteString(labelStyle.Render("q") + valueStyle.Render(fmt.Sprintf("%+.4f", qn)) + "\n")
	s.WriteString(labelStyle.Render("v") + valueStyle.Render(fmt.Sprintf("%+.4f", vn)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", m.cfg.Params.Energy(qn, vn))) + "\n")
	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(fmt.Sprintf("%+.3f rad", m.cfg.Params.Phase(qn, vn))) + "\n")
	if m.cfg.Params.DelayPeriods > 0 {
		s.WriteString(labelStyle.Render("Delay") + valueStyle.Render(fmt.Sprintf("%d steps", m.cfg.Params.DelaySteps(m.cfg.Dt))) + "\n")
	}
	s.WriteString(helpStyle.Render("\nSPACE:Pause  R:Replay  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left.String(), statsStyle.Render(s.String()))
}

func tailWindow(xs []float64) []float64 {
	if len(xs) > windowSize {
		return xs[len(xs)-windowSize:]
	}
	return xs
}
