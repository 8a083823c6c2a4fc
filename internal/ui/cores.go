package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/metrics"
)

// CoresModel lists per-core usage, two cores per row.
type CoresModel struct {
	width  int
	height int
	cpu    metrics.CPUStats
}

func NewCoresModel() CoresModel {
	return CoresModel{}
}

func (m *CoresModel) SetStats(cpu metrics.CPUStats) {
	m.cpu = cpu
}

func (m *CoresModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m CoresModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := PanelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0))
	header := TitleStyle.Render(fmt.Sprintf("CPU CORES: %.1f%%", m.cpu.GlobalUsagePercent))

	// One row for the header.
	cores := renderCores(m.cpu.PerCoreUsage, m.cpu.PerCoreTemp, m.width-4, m.height-3)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, cores))
}

func renderCores(usage []float64, temps []float64, width, rows int) string {
	var sb strings.Builder
	colWidth := (width / 2) - 2
	if colWidth < 10 {
		colWidth = width // single column
	}

	if len(usage) == 0 {
		return "No CPU Data"
	}

	perRow := 2
	if colWidth == width {
		perRow = 1
	}

	for i, row := 0, 0; i < len(usage); i, row = i+perRow, row+1 {
		if rows > 0 && row >= rows {
			sb.WriteString(MetricLabelStyle.Render(fmt.Sprintf("+%d more", len(usage)-i)))
			break
		}

		bar1 := renderBarCompact(usage[i], colWidth, coreLabel(i, temps))
		if perRow == 2 && i+1 < len(usage) {
			bar2 := renderBarCompact(usage[i+1], colWidth, coreLabel(i+1, temps))

			// Pad to align
			padding := width - lipgloss.Width(bar1) - lipgloss.Width(bar2)
			if padding < 0 {
				padding = 0
			}
			sb.WriteString(bar1 + strings.Repeat(" ", padding) + bar2 + "\n")
		} else {
			sb.WriteString(bar1 + "\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func coreLabel(i int, temps []float64) string {
	if len(temps) > i && temps[i] > 0 {
		return fmt.Sprintf("%2d %d°C", i, int(temps[i]))
	}
	return fmt.Sprintf("%2d", i)
}

func renderBarCompact(value float64, width int, label string) string {
	// [Label  |||||     ]
	// Label takes some space.
	labelLen := lipgloss.Width(label)
	barLen := width - labelLen - 3 // [ ] and space
	if barLen < 5 {
		return fmt.Sprintf("%s %d%%", label, int(value))
	}

	filled := int(value / 100 * float64(barLen))
	if filled > barLen {
		filled = barLen
	}
	if filled < 0 {
		filled = 0
	}
	empty := barLen - filled

	bar := strings.Repeat("|", filled) + strings.Repeat(" ", empty)

	return fmt.Sprintf("%s [%s]", label, bandStyle(coreBand(value)).Render(bar))
}
