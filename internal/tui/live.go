// Package tui renders a live terminal view of a running torque
// computation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spintorque/internal/driver"
	"github.com/san-kum/spintorque/internal/metrics"
)

const historyCapacity = 120

type TickMsg time.Time

// Model steps the driver on every tick and keeps a rolling history of
// torque statistics for the graph panel.
type Model struct {
	drv        *driver.Driver
	totalSteps int
	step       int
	running    bool
	err        error

	sttHistory []float64
	sheHistory []float64
	sttMax     float64
	sttMean    float64
	sheMax     float64
}

func NewModel(drv *driver.Driver, totalSteps int) Model {
	return Model{
		drv:        drv,
		totalSteps: totalSteps,
		running:    true,
		sttHistory: make([]float64, 0, historyCapacity),
		sheHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}

	case TickMsg:
		if m.err != nil || m.step >= m.totalSteps {
			return m, tick()
		}
		if m.running {
			if err := m.drv.Step(); err != nil {
				m.err = err
				return m, tick()
			}
			m.step++

			sttMax, sttMean, sheMax := metrics.Snapshot(m.drv.Buffers())
			m.sttMax, m.sttMean, m.sheMax = sttMax, sttMean, sheMax

			m.sttHistory = appendCapped(m.sttHistory, sttMax)
			m.sheHistory = appendCapped(m.sheHistory, sheMax)
		}
		return m, tick()
	}
	return m, nil
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m Model) View() string {
	var b strings.Builder

	cfg := m.drv.Calculator().Config()
	b.WriteString(headerStyle.Render(fmt.Sprintf("spintorque live — stt=%s she=%v", cfg.STT, cfg.SHE)))
	b.WriteString("\n")

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.step >= m.totalSteps {
		status = "done"
	}
	if m.err != nil {
		status = "error: " + m.err.Error()
	}

	rows := []struct {
		label string
		value string
	}{
		{"step", fmt.Sprintf("%d / %d", m.step, m.totalSteps)},
		{"status", statusStyle.Render(status)},
		{"stt max", fmt.Sprintf("%.6g", m.sttMax)},
		{"stt mean", fmt.Sprintf("%.6g", m.sttMean)},
		{"she max", fmt.Sprintf("%.6g", m.sheMax)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	if len(m.sttHistory) > 1 {
		graph := asciigraph.Plot(m.sttHistory,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("max STT torque norm"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}
	if cfg.SHE && len(m.sheHistory) > 1 {
		graph := asciigraph.Plot(m.sheHistory,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("max SHE torque norm"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause/resume · q quit"))
	return b.String()
}
