package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/isingsim/internal/ising"
)

const (
	historyCapacity = 400
	tempFactor      = 1.05
	graphWidth      = 50
	graphHeight     = 8
)

type TickMsg time.Time

// Stepper advances an engine; it matches experiment.Stepper.
type Stepper func(e *ising.Engine, iterations int)

// Model drives one engine from a Bubble Tea program. Algorithms are looked
// up by name so the view can toggle between them.
type Model struct {
	engine     *ising.Engine
	opts       ising.Options
	size       int
	algorithms map[string]Stepper
	order      []string
	current    int
	running    bool
	showHelp   bool
	fps        int
	energy     []float64
	mag        []float64
	keys       keyMap
	err        error
}

// NewModel builds a live view. order lists the algorithm names to cycle
// through; the first one is active initially.
func NewModel(size int, opts ising.Options, algorithms map[string]Stepper, order []string, fps int) (Model, error) {
	e, err := ising.New(size, opts)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		engine:     e,
		opts:       opts,
		size:       size,
		algorithms: algorithms,
		order:      order,
		running:    true,
		fps:        fps,
		energy:     make([]float64, 0, historyCapacity),
		mag:        make([]float64, 0, historyCapacity),
		keys:       defaultKeyMap(),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Algorithm):
			if len(m.order) > 0 {
				m.current = (m.current + 1) % len(m.order)
			}
		case key.Matches(msg, m.keys.Hotter):
			m.engine.SetTemperature(m.engine.T() * tempFactor)
		case key.Matches(msg, m.keys.Colder):
			m.engine.SetTemperature(m.engine.T() / tempFactor)
		case key.Matches(msg, m.keys.Critical):
			m.engine.SetTemperature(m.engine.Tc())
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case msg.String() == "t":
			NextTheme()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Algorithm returns the name of the active algorithm.
func (m Model) Algorithm() string {
	if len(m.order) == 0 {
		return ""
	}
	return m.order[m.current]
}

// Engine exposes the driven engine.
func (m Model) Engine() *ising.Engine { return m.engine }

func (m *Model) step() {
	step, ok := m.algorithms[m.Algorithm()]
	if !ok {
		m.err = fmt.Errorf("unknown algorithm: %s", m.Algorithm())
		m.running = false
		return
	}
	step(m.engine, 1)

	m.energy = appendCapped(m.energy, m.engine.H()/float64(m.size*m.size))
	m.mag = appendCapped(m.mag, m.engine.M())
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// reset replaces the engine with a fresh random lattice at the current
// temperature, drawing from the same random source.
func (m *Model) reset() {
	opts := m.opts
	opts.T = m.engine.T()
	if e, err := ising.New(m.size, opts); err == nil {
		m.engine = e
	} else {
		m.err = err
	}
	m.energy = m.energy[:0]
	m.mag = m.mag[:0]
}

func (m Model) View() string {
	e := m.engine

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	stats := []string{
		TitleStyle.Render(strings.ToUpper(m.Algorithm())) + "  " + status,
		"",
		Stat("size", fmt.Sprintf("%d×%d", m.size, m.size)),
		Stat("T", fmt.Sprintf("%.4f", e.T())),
		Stat("Tc", fmt.Sprintf("%.4f", e.Tc())),
		Stat("T/Tc", fmt.Sprintf("%.3f", e.T()/e.Tc())),
		Stat("β", fmt.Sprintf("%.4f", e.Beta())),
		Stat("H", fmt.Sprintf("%.1f", e.H())),
		Stat("H/N", fmt.Sprintf("%.4f", e.H()/float64(m.size*m.size))),
		Stat("M", fmt.Sprintf("%+.4f", e.M())),
		Stat("iteration", fmt.Sprintf("%d", e.Iterations())),
		Stat("theme", CurrentTheme.Name),
	}
	if m.err != nil {
		stats = append(stats, "", StatusPaused.Render(m.err.Error()))
	}
	if len(m.mag) > 1 {
		stats = append(stats, "", PlotSeries(m.mag, graphWidth, graphHeight, "M"))
	}
	if len(m.energy) > 1 {
		stats = append(stats, "", PlotSeries(m.energy, graphWidth, graphHeight, "H/N"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Render(RenderLattice(e.Lattice())),
		StatsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)),
	)

	return body + "\n" + HelpStyle.Render(m.helpView())
}

func (m Model) helpView() string {
	if !m.showHelp {
		return "? help • q quit"
	}
	parts := make([]string, 0, 8)
	for _, b := range m.keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "t theme")
	return strings.Join(parts, " • ")
}

// Run starts the live view in the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
