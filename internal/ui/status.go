package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/reactor"
)

// warnCollisions is the total collision count above which the status panel
// starts counting down to meltdown.
const warnCollisions = 50

type StatusModel struct {
	width  int
	height int

	status     reactor.Status
	stability  float64
	paused     bool
	mode       string
	particles  int
	collisions uint32
	total      uint32
	until      uint32
}

func NewStatusModel() StatusModel {
	return StatusModel{mode: modeLive}
}

func (m *StatusModel) SetReactor(r *reactor.Reactor) {
	m.status = r.Status()
	m.stability = r.Stability()
	m.particles = r.ParticleCount()
	m.collisions = r.Collisions()
	m.total = r.TotalCollisions()
	m.until = r.CollisionsUntilMeltdown()
}

func (m *StatusModel) SetMode(mode string, paused bool) {
	m.mode = mode
	m.paused = paused
}

func (m *StatusModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m StatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := PanelStyle
	if m.status.Level >= reactor.LevelCritical {
		style = AlertPanelStyle
	}
	style = style.Width(max(m.width-2, 0)).Height(max(m.height-2, 0))

	state := MetricValueStyle.Render("ACTIVE")
	if m.paused {
		state = AlertStyle.Render("PAUSED")
	}

	rows := []string{
		TitleStyle.Render("REACTOR STATUS"),
		levelStyle(m.status.Level).Render(m.status.Label),
		statusRow("Stability", fmt.Sprintf("%.1f", m.stability)),
		MetricLabelStyle.Render("State: ") + state,
		statusRow("Mode", m.mode),
		statusRow("Particles", fmt.Sprintf("%d", m.particles)),
		statusRow("Collisions", fmt.Sprintf("%d (total %d)", m.collisions, m.total)),
	}
	if m.total > warnCollisions && m.until > 0 {
		rows = append(rows, "", AlertStyle.Render(fmt.Sprintf("%d collisions until meltdown!", m.until)))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func statusRow(label, value string) string {
	return MetricLabelStyle.Render(label+": ") + MetricValueStyle.Render(value)
}
