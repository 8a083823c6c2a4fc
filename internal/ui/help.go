package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const aboutText = `ReactorTop turns your machine into a nuclear reactor.

Control rods are withdrawn as CPU load rises. The core heats up toward the
rods, radiation grows with the square of the withdrawal and the coolant
boils away. Radiation particles drift through the vessel and may collide;
every collision heats the core a little and may split into new particles.

Once more than 100 collisions have happened and the instability score
passes 80, the reactor melts down. A meltdown cannot be stopped, only reset.

Simulation mode sweeps a synthetic load between its bounds. The stress test
burns real CPU so the reactor reacts to genuine load.`

func renderHelp(h help.Model, keys keyMap, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("REACTORTOP HELP"),
		"",
		TitleStyle.Render("Controls"),
		h.FullHelpView(keys.FullHelp()),
		"",
		TitleStyle.Render("About / Physics"),
		TextStyle.Render(aboutText),
		"",
		MetricLabelStyle.Render("press h, ? or q to close"),
	)

	box := PanelStyle.Padding(1, 2).Render(content)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
