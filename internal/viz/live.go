package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/chagge/hysnet/internal/hysteresis"
)

const historyCapacity = 600

type TickMsg time.Time

// Model is the live terminal view of a running network: one macro step per
// tick, with the latched outputs rendered as a cell row and one oscillator's
// state history graphed below.
type Model struct {
	net         *hysteresis.Network
	dt          float64
	fps         int
	t           float64
	step        int
	running     bool
	focus       int
	history     []float64
	initStates  []float64
	initOutputs []float64
	err         error
}

func NewModel(net *hysteresis.Network, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		net:         net,
		dt:          dt,
		fps:         fps,
		running:     true,
		history:     make([]float64, 0, historyCapacity),
		initStates:  net.States(),
		initOutputs: net.Outputs(),
	}
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
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.focus = (m.focus + 1) % m.net.Size()
			m.history = m.history[:0]
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one macro step in place.
func (m *Model) advance() {
	_, err := m.net.Simulate(hysteresis.SimConfig{Steps: 1, Time: m.dt})
	if err != nil {
		m.err = err
		return
	}
	m.step++
	m.t += m.dt

	m.history = append(m.history, m.net.States()[m.focus])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) reset() {
	// initStates/initOutputs were captured from the network in NewModel, so
	// the length checks cannot fail.
	_ = m.net.SetStates(m.initStates)
	_ = m.net.SetOutputs(m.initOutputs)
	m.t = 0
	m.step = 0
	m.history = m.history[:0]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("hysteresis network  %d oscillators", m.net.Size())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("error: %v\n", m.err))
		return b.String()
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	b.WriteString(labelStyle.Render("status"))
	b.WriteString(valueStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("t"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f (step %d)", m.t, m.step)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("outputs"))
	b.WriteString(renderOutputs(m.net.Outputs()))
	b.WriteString("\n\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("oscillator %d state", m.focus)),
		)
		b.WriteString(graph)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · tab next oscillator · q quit"))
	b.WriteString("\n")

	return b.String()
}
