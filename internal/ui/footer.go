package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

type FooterModel struct {
	width int
	mode  string
	help  help.Model
	keys  keyMap
}

func NewFooterModel(keys keyMap) FooterModel {
	return FooterModel{
		mode: modeLive,
		help: help.New(),
		keys: keys,
	}
}

func (m *FooterModel) SetSize(w int) {
	m.width = w
	m.help.Width = w / 2
}

func (m *FooterModel) SetMode(mode string) {
	m.mode = mode
}

func (m FooterModel) View() string {
	if m.width == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		Background(lipgloss.Color(theme.Border)).
		Foreground(lipgloss.Color(theme.Background)).
		Padding(0, 1)

	left := fmt.Sprintf("ReactorTop | %s | %s", time.Now().Format("15:04:05"), m.mode)
	right := m.help.ShortHelpView(m.keys.ShortHelp())

	// Spacer
	spacerWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return style.Render(left + spacer + right)
}
