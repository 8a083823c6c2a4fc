package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/reactor"
	"github.com/guptarohit/asciigraph"
)

// ChartModel plots the sampled core temperature history.
type ChartModel struct {
	width   int
	height  int
	history []float64
}

func NewChartModel() ChartModel {
	return ChartModel{}
}

func (m *ChartModel) SetHistory(history []float64) {
	m.history = history
}

func (m *ChartModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ChartModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := PanelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0))
	title := TitleStyle.Render("TEMPERATURE HISTORY")

	innerW, innerH := m.width-4, m.height-2
	if len(m.history) == 0 || innerW < 20 || innerH < 4 {
		waiting := lipgloss.Place(max(innerW, 0), max(innerH-1, 0), lipgloss.Center, lipgloss.Center,
			MetricLabelStyle.Render("Waiting for data..."))
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, waiting))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, plotTemperature(m.history, innerW, innerH-1)))
}

// plotTemperature renders history on a fixed 200..1000°C axis so the
// curve's height is comparable between runs. The y labels take roughly ten
// columns; width and height are those of the whole plot.
func plotTemperature(history []float64, width, height int) string {
	graph := asciigraph.Plot(history,
		asciigraph.Height(max(height-1, 2)),
		asciigraph.Width(max(width-10, 10)),
		asciigraph.LowerBound(reactor.BaseTemperature-20),
		asciigraph.UpperBound(reactor.MaxTemperature),
		asciigraph.Precision(0),
	)
	return MetricValueStyle.Render(graph)
}
