package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/reactortop/internal/reactor"
)

// Theme colors based on "Wrath of the Lich King" palette
const (
	ColorMidnightBlack = "#0A001F" // Background
	ColorIceBlue       = "#81A1C1" // Primary UI/Text
	ColorSteelGray     = "#4C566A" // Panels/Borders
	ColorPaleBlue      = "#8FBCBB" // Graphs/Normal Metrics
	ColorBloodCrimson  = "#C41E3A" // Alerts/Errors
)

// Palette is the full set of colors a theme provides.
type Palette struct {
	Background string
	Text       string
	Border     string
	Normal     string
	Alert      string

	Rod      string
	Wall     string
	Particle string

	// Bands holds five colors from calm to hot, used for gauges, cores and
	// status levels.
	Bands [5]string
	// Explosion cycles while the meltdown animation plays.
	Explosion [5]string
}

var palettes = map[string]Palette{
	"lich-king": {
		Background: ColorMidnightBlack,
		Text:       ColorIceBlue,
		Border:     ColorSteelGray,
		Normal:     ColorPaleBlue,
		Alert:      ColorBloodCrimson,
		Rod:        "#D8DEE9",
		Wall:       ColorSteelGray,
		Particle:   "#EBCB8B",
		Bands:      [5]string{"#A3BE8C", "#8FBCBB", "#EBCB8B", "#D08770", ColorBloodCrimson},
		Explosion:  [5]string{"#FFF3B0", "#FFD166", "#F4A259", "#E76F51", ColorBloodCrimson},
	},
	"phosphor": {
		Background: "#001100",
		Text:       "#33FF66",
		Border:     "#116622",
		Normal:     "#22CC55",
		Alert:      "#FF3333",
		Rod:        "#AAFFAA",
		Wall:       "#116622",
		Particle:   "#CCFF33",
		Bands:      [5]string{"#116622", "#22CC55", "#99FF33", "#FFCC00", "#FF3333"},
		Explosion:  [5]string{"#FFFFCC", "#FFFF33", "#FFCC00", "#FF6600", "#FF3333"},
	},
}

var theme = palettes["lich-king"]

var (
	// Base styles
	BaseStyle lipgloss.Style

	// Panel styles
	PanelStyle      lipgloss.Style
	AlertPanelStyle lipgloss.Style

	// Text styles
	TitleStyle       lipgloss.Style
	TextStyle        lipgloss.Style
	MetricLabelStyle lipgloss.Style
	MetricValueStyle lipgloss.Style

	// Alert styles
	AlertStyle lipgloss.Style

	// Bar styles
	BarStyle      lipgloss.Style
	AlertBarStyle lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyTheme switches every style to the named palette. Unknown names keep
// the current one and report false.
func ApplyTheme(name string) bool {
	p, ok := palettes[name]
	if !ok {
		return false
	}
	theme = p
	buildStyles()
	return true
}

func buildStyles() {
	BaseStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Background)).
		Foreground(lipgloss.Color(theme.Text))

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1)

	AlertPanelStyle = PanelStyle.
		BorderForeground(lipgloss.Color(theme.Alert))

	TitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Text)).
		Bold(true)

	TextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Text))

	MetricLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Border))

	MetricValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	AlertStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Alert)).
		Bold(true)

	BarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	AlertBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Alert))
}

// gaugeBand maps a percentage to one of the five bands:
// 0-20, 21-40, 41-60, 61-80 and 81+.
func gaugeBand(pct float64) int {
	switch {
	case pct > 80:
		return 4
	case pct > 60:
		return 3
	case pct > 40:
		return 2
	case pct > 20:
		return 1
	default:
		return 0
	}
}

// coreBand colors per-core usage at >90, >70, >50 and >30.
func coreBand(pct float64) int {
	switch {
	case pct > 90:
		return 4
	case pct > 70:
		return 3
	case pct > 50:
		return 2
	case pct > 30:
		return 1
	default:
		return 0
	}
}

func bandStyle(band int) lipgloss.Style {
	band = max(0, min(band, len(theme.Bands)-1))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Bands[band]))
}

func levelStyle(l reactor.Level) lipgloss.Style {
	switch l {
	case reactor.LevelIdle, reactor.LevelNormal:
		return bandStyle(0)
	case reactor.LevelCaution:
		return bandStyle(2)
	case reactor.LevelWarning, reactor.LevelDanger:
		return bandStyle(3).Bold(true)
	default:
		return AlertStyle.Blink(true)
	}
}
