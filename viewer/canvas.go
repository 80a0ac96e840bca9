// Package viewer plays back accumulated vehicle histories frame by frame
// in the terminal.
package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/livemapsbm/livemapsbm/types"
)

type cell struct {
	set   bool
	color types.Color
}

// Canvas is a character-cell drawing surface. It provides the render
// capability the replay needs: a sized plane that plots filled circles,
// quantized to the nearest cell.
type Canvas struct {
	width      int
	height     int
	cells      []cell
	background types.Color
	styles     map[string]lipgloss.Style
}

// NewCanvas returns a canvas of the given cell dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{styles: make(map[string]lipgloss.Style)}
	c.Resize(width, height)
	return c
}

// Resize reallocates the cell grid, dropping current contents.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = width
	c.height = height
	c.cells = make([]cell, width*height)
}

// Size returns the canvas dimensions in drawing-plane units.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height)
}

// Clear resets every cell to the background.
func (c *Canvas) Clear(background types.Color) {
	c.background = background
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

// FillCircle plots a dot at the cell nearest to (x, y). A terminal cell
// is already larger than the circle radius the map uses, so the circle
// collapses to a single cell. Points outside the canvas are dropped.
func (c *Canvas) FillCircle(x, y float64, color types.Color) {
	col := int(x + 0.5)
	row := int(y + 0.5)
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	c.cells[row*c.width+col] = cell{set: true, color: color}
}

// Cell reports whether the cell at (col, row) is set and in which color.
func (c *Canvas) Cell(col, row int) (types.Color, bool) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return types.Color{}, false
	}
	cl := c.cells[row*c.width+col]
	return cl.color, cl.set
}

// View renders the canvas, coloring set cells with their line color.
func (c *Canvas) View() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			cl := c.cells[row*c.width+col]
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style(cl.color).Render("●"))
		}
		if row < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) style(color types.Color) lipgloss.Style {
	hex := color.Hex()
	style, ok := c.styles[hex]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c.styles[hex] = style
	}
	return style
}
