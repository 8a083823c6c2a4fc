package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/metrics"
	"github.com/google/reactortop/internal/reactor"
)

const (
	gaugeCPU = iota
	gaugeMemory
	gaugeRadiation
	gaugeTemperature
	gaugeCoolant
	gaugeGPU
	gaugeCount
)

// GaugesModel shows the system and reactor gauges. Displayed values chase
// their targets on a spring so the bars glide between metric polls.
type GaugesModel struct {
	width  int
	height int

	spring  harmonica.Spring
	targets [gaugeCount]float64
	pos     [gaugeCount]float64
	vel     [gaugeCount]float64

	simulated   bool
	temperature float64
	stats       metrics.SystemStats
}

// NewGaugesModel builds the gauges for a frame rate of fps.
func NewGaugesModel(fps int) GaugesModel {
	return GaugesModel{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 1.0),
	}
}

func (m GaugesModel) Init() tea.Cmd {
	return nil
}

func (m GaugesModel) Update(msg tea.Msg) (GaugesModel, tea.Cmd) {
	return m, nil
}

func (m *GaugesModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *GaugesModel) SetStats(stats metrics.SystemStats) {
	m.stats = stats
	m.targets[gaugeMemory] = stats.Memory.UsedPercent
	m.targets[gaugeGPU] = float64(stats.GPU.Utilization)
}

// SetReactor takes the reactor-driven targets. load is what the reactor was
// fed this frame, which differs from the measured CPU in simulation mode.
func (m *GaugesModel) SetReactor(r *reactor.Reactor, load float64, simulated bool) {
	m.simulated = simulated
	m.temperature = r.Temperature()
	m.targets[gaugeCPU] = load
	m.targets[gaugeRadiation] = r.Radiation()
	m.targets[gaugeTemperature] = temperaturePercent(r.Temperature())
	m.targets[gaugeCoolant] = r.Coolant()
}

// Step advances every gauge one frame along its spring.
func (m *GaugesModel) Step() {
	for i := range m.pos {
		m.pos[i], m.vel[i] = m.spring.Update(m.pos[i], m.vel[i], m.targets[i])
	}
}

// Value returns the displayed (smoothed) value of a gauge.
func (m GaugesModel) Value(gauge int) float64 {
	return m.pos[gauge]
}

func temperaturePercent(t float64) float64 {
	return (t - reactor.BaseTemperature) / (reactor.MaxTemperature - reactor.BaseTemperature) * 100
}

func (m GaugesModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := PanelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0))
	barWidth := max(m.width-4, 10)

	cpuLabel := "CPU"
	if m.simulated {
		cpuLabel = "CPU (sim)"
	}

	rows := []string{
		TitleStyle.Render("SYSTEM METRICS"),
		renderGauge(cpuLabel, m.pos[gaugeCPU], barWidth),
		renderGauge(fmt.Sprintf("Mem %s/%s", formatBytes(m.stats.Memory.Used), formatBytes(m.stats.Memory.Total)), m.pos[gaugeMemory], barWidth),
		renderGauge("Radiation", m.pos[gaugeRadiation], barWidth),
		renderGauge(fmt.Sprintf("Temp %.0f°C", m.temperature), m.pos[gaugeTemperature], barWidth),
		renderGauge("Coolant", m.pos[gaugeCoolant], barWidth),
	}
	if m.stats.GPU.Available {
		rows = append(rows, renderGauge("GPU "+m.stats.GPU.Name, m.pos[gaugeGPU], barWidth))
	}

	rows = append(rows,
		"",
		MetricLabelStyle.Render(fmt.Sprintf("Load: %.2f %.2f %.2f", m.stats.CPU.LoadAvg[0], m.stats.CPU.LoadAvg[1], m.stats.CPU.LoadAvg[2])),
		MetricLabelStyle.Render("Uptime: "+formatUptime(m.stats.Uptime)),
	)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderGauge draws "label ████░░░░ 42%" colored by gauge band.
func renderGauge(label string, value float64, width int) string {
	if math.IsNaN(value) {
		value = 0
	}
	value = max(0, min(value, 100))
	pct := fmt.Sprintf(" %3.0f%%", value)
	bar := renderBar(value, 100, width-lipgloss.Width(pct), label)
	return bar + MetricValueStyle.Render(pct)
}

func renderBar(value, max float64, width int, label string) string {
	if max <= 0 {
		max = 100
	} // Avoid divide by zero
	if width < 10 {
		return label
	}
	barWidth := width - lipgloss.Width(label) - 1
	if barWidth < 0 {
		barWidth = 0
	}

	ratio := value / max
	if ratio > 1.0 {
		ratio = 1.0
	}
	if ratio < 0 || math.IsNaN(ratio) {
		ratio = 0
	}
	filled := int(ratio * float64(barWidth))
	empty := barWidth - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return fmt.Sprintf("%s %s", label, bandStyle(gaugeBand(ratio*100)).Render(bar))
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	d -= time.Duration(days) * 24 * time.Hour
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, h, mnt)
	}
	return fmt.Sprintf("%02dh %02dm", h, mnt)
}
