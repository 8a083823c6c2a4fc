package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/reactor"
)

// VesselModel draws the reactor: walls, control rods, one fuel cell per core
// and the radiation particles. Once the reactor explodes it draws the
// meltdown sequence instead.
type VesselModel struct {
	width  int
	height int

	rod       float64
	load      float64
	cores     []float64
	particles []reactor.Particle
	exploding bool
	frame     uint32
}

func NewVesselModel() VesselModel {
	return VesselModel{}
}

func (m VesselModel) Init() tea.Cmd {
	return nil
}

func (m VesselModel) Update(msg tea.Msg) (VesselModel, tea.Cmd) {
	return m, nil
}

// SetReactor snapshots everything the view needs from r.
func (m *VesselModel) SetReactor(r *reactor.Reactor) {
	m.rod = r.RodPosition()
	m.load = r.Load()
	m.exploding = r.Exploding()
	m.frame = r.ExplosionFrame()
	m.particles = r.Particles()

	n := max(r.CoreCount(), 1)
	m.cores = m.cores[:0]
	for i := 0; i < n; i++ {
		m.cores = append(m.cores, r.CoreLoad(i))
	}
}

func (m *VesselModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m VesselModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := PanelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0))
	innerW := m.width - 4
	innerH := m.height - 2

	if m.exploding {
		return AlertPanelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 0)).
			Render(renderExplosion(m.frame, innerW, innerH))
	}

	header := TitleStyle.Render("REACTOR CORE") + MetricLabelStyle.Render(
		fmt.Sprintf("  rods %3.0f%% withdrawn  load %3.0f%%", m.rod*100, m.load))
	if innerW < 8 || innerH < 6 {
		return style.Render(header)
	}

	c := newCanvas(innerW, innerH-1)
	m.drawVessel(c)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, c.String()))
}

func (m VesselModel) drawVessel(c *canvas) {
	innerW, innerH := c.w-2, c.h-2

	// Walls
	for x := 1; x < c.w-1; x++ {
		c.set(x, 0, '─', theme.Wall)
		c.set(x, c.h-1, '─', theme.Wall)
	}
	for y := 1; y < c.h-1; y++ {
		c.set(0, y, '│', theme.Wall)
		c.set(c.w-1, y, '│', theme.Wall)
	}
	c.set(0, 0, '╭', theme.Wall)
	c.set(c.w-1, 0, '╮', theme.Wall)
	c.set(0, c.h-1, '╰', theme.Wall)
	c.set(c.w-1, c.h-1, '╯', theme.Wall)

	// Fuel cells sit in slots three columns wide; rods drop through the gap
	// of every other slot.
	perRow := max(innerW/3, 1)
	rows := (len(m.cores) + perRow - 1) / perRow
	offsetX := 1 + (innerW-perRow*3)/2
	startY := 1 + max((innerH-rows)/2, 0)

	for i, load := range m.cores {
		x := offsetX + (i%perRow)*3
		y := startY + i/perRow
		if y > innerH {
			break
		}
		g := fuelGlyph(load)
		ink := theme.Bands[coreBand(load)]
		c.set(x, y, g, ink)
		c.set(x+1, y, g, ink)
	}

	for _, p := range m.particles {
		x := 1 + min(int(p.X*float64(innerW)), innerW-1)
		y := 1 + min(int((1-p.Y)*float64(innerH)), innerH-1)
		if c.at(x, y) != ' ' {
			continue
		}
		c.set(x, y, particleGlyph(p.Energy), theme.Particle)
	}

	insertion := int(math.Round((1 - m.rod) * float64(innerH)))
	for k := 1; k < perRow; k += 2 {
		x := offsetX + k*3 + 2
		if x >= c.w-1 {
			break
		}
		c.set(x, 0, '┬', theme.Wall)
		for y := 1; y <= insertion; y++ {
			c.set(x, y, '┃', theme.Rod)
		}
	}
}

// fuelGlyph shades a fuel cell by core load.
func fuelGlyph(load float64) rune {
	switch {
	case load > 90:
		return '█'
	case load > 70:
		return '▓'
	case load > 40:
		return '▒'
	case load > 10:
		return '░'
	default:
		return '·'
	}
}

func particleGlyph(energy float64) rune {
	switch {
	case energy > 0.85:
		return '*'
	case energy > 0.65:
		return '•'
	default:
		return '∘'
	}
}

var mushroomCloud = []string{
	"      .-~~~~~~~~~-.      ",
	"   .-(  (   )   )  )-.   ",
	"  (  (   (   )   )   )  ",
	"  (___(___(___)___)___)  ",
	"   '-._____________.-'   ",
	"         |  |  |         ",
	"         ) (   (         ",
	"        (   )   )        ",
	"      __)  (   (__       ",
	"  ~~~~~~~~~~~~~~~~~~~~~  ",
}

// renderExplosion grows the cloud from the ground up as frame advances and
// cycles its color every two frames.
func renderExplosion(frame uint32, width, height int) string {
	visible := min(len(mushroomCloud), 2+int(frame)/3)
	lines := make([]string, len(mushroomCloud))
	for i := range lines {
		if i >= len(mushroomCloud)-visible {
			lines[i] = mushroomCloud[i]
		} else {
			lines[i] = strings.Repeat(" ", lipgloss.Width(mushroomCloud[i]))
		}
	}

	color := theme.Explosion[(frame/2)%uint32(len(theme.Explosion))]
	cloud := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Join(lines, "\n"))

	content := lipgloss.JoinVertical(lipgloss.Center,
		AlertStyle.Render("!!! REACTOR MELTDOWN !!!"),
		"",
		cloud,
		"",
		AlertStyle.Render(fmt.Sprintf("Core temperature: %d°C", 1000+int(frame)*200)),
		TextStyle.Render("Evacuate the area immediately."),
		MetricLabelStyle.Render("press r to reset the reactor"),
	)

	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
