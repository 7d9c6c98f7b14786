// Package screen hosts the particle field in a terminal through tcell:
// Display flushes a render.Canvas to the screen and Pump turns terminal
// events into pointer, viewport and key notifications.
package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/weathermood/render"
)

// Display writes canvas cells to a tcell screen
type Display struct {
	screen tcell.Screen
}

// NewDisplay wraps an initialized screen
func NewDisplay(s tcell.Screen) *Display {
	return &Display{screen: s}
}

// Size returns the screen size in cells
func (d *Display) Size() (cols, rows int) {
	return d.screen.Size()
}

// Show copies every canvas cell to the screen and flushes
// Trailing halves of wide runes are left to the terminal
func (d *Display) Show(c *render.Canvas) {
	cols, rows := c.Cols(), c.Rows()
	cells := c.Cells()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := cells[row*cols+col]
			if cell.Rune == 0 {
				continue
			}
			d.screen.SetContent(col, row, cell.Rune, nil, Style(cell.Fg, cell.Bg))
		}
	}
	d.screen.Show()
}

// Sync repaints the whole terminal, used after a resize
func (d *Display) Sync() {
	d.screen.Sync()
}

// Style converts a canvas color pair to a truecolor tcell style
func Style(fg, bg render.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(Color(fg)).Background(Color(bg))
}

// Color converts a canvas color to a tcell RGB color
func Color(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
