package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a fixed grid of runes, each with an optional foreground color.
// String collapses runs of equal color into a single styled segment.
type canvas struct {
	w, h  int
	cells []rune
	inks  []string
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{
		w:     w,
		h:     h,
		cells: make([]rune, w*h),
		inks:  make([]string, w*h),
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, ink string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = r
	c.inks[y*c.w+x] = ink
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x]
}

func (c *canvas) String() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		row := y * c.w
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.inks[row+x] == c.inks[row+start] {
				continue
			}
			seg := string(c.cells[row+start : row+x])
			if ink := c.inks[row+start]; ink != "" {
				seg = lipgloss.NewStyle().Foreground(lipgloss.Color(ink)).Render(seg)
			}
			sb.WriteString(seg)
			start = x
		}
		if y < c.h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
