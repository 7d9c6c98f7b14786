package render

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell of the canvas
// Rune 0 marks the trailing half of a wide rune
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Stroke carries per-draw state equivalent to a 2D context's globalAlpha and shadowBlur
type Stroke struct {
	Alpha float64
	// Glow is the halo radius in logical pixels, 0 disables
	Glow float64
}

// CanvasConfig sets the logical pixel geometry of a cell and the compositing gains
type CanvasConfig struct {
	CellWidth  float64
	CellHeight float64
	Background RGB
	// GlyphGain scales glyph alpha; glyphs cover only part of a cell so raw alpha reads too dim
	GlyphGain float64
	// GlowGain scales halo intensity added to backgrounds
	GlowGain float64
}

// DefaultCanvasConfig returns 8x16 logical pixels per cell on a dark navy background
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		CellWidth:  8,
		CellHeight: 16,
		Background: RGB{R: 10, G: 12, B: 24},
		GlyphGain:  2.0,
		GlowGain:   0.6,
	}
}

// Canvas is a drawable surface in logical pixels backed by a row-major cell grid
// Primitives outside the grid are clipped; a zero-area canvas ignores all drawing
type Canvas struct {
	cfg   CanvasConfig
	cells []Cell
	// ink is the strongest glyph alpha written to each cell this frame
	ink  []float64
	cols int
	rows int
}

// NewCanvas creates a canvas of cols x rows cells
func NewCanvas(cols, rows int, cfg CanvasConfig) *Canvas {
	def := DefaultCanvasConfig()
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.GlyphGain <= 0 {
		cfg.GlyphGain = def.GlyphGain
	}
	if cfg.GlowGain < 0 {
		cfg.GlowGain = 0
	}
	c := &Canvas{cfg: cfg}
	c.ResizeCells(cols, rows)
	return c
}

// Size returns the logical pixel dimensions
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols) * c.cfg.CellWidth, float64(c.rows) * c.cfg.CellHeight
}

// Resize sets the logical pixel dimensions, truncating to whole cells
func (c *Canvas) Resize(w, h float64) {
	c.ResizeCells(int(w/c.cfg.CellWidth), int(h/c.cfg.CellHeight))
}

// ResizeCells adjusts the grid, reallocating only if capacity is insufficient
func (c *Canvas) ResizeCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
		c.ink = make([]float64, size)
	} else {
		c.cells = c.cells[:size]
		c.ink = c.ink[:size]
	}
	c.cols = cols
	c.rows = rows
	c.Clear()
}

// Cols returns the grid width in cells
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the grid height in cells
func (c *Canvas) Rows() int { return c.rows }

// CellSize returns the logical pixel size of one cell
func (c *Canvas) CellSize() (w, h float64) {
	return c.cfg.CellWidth, c.cfg.CellHeight
}

// CellCenter converts a cell coordinate to the logical pixel at its center
func (c *Canvas) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.cfg.CellWidth, (float64(row) + 0.5) * c.cfg.CellHeight
}

// Cells exposes the row-major grid: cells[row*cols + col]
func (c *Canvas) Cells() []Cell {
	return c.cells
}

// At returns the cell at col,row; out-of-bounds yields the zero cell
func (c *Canvas) At(col, row int) Cell {
	if !c.inBounds(col, row) {
		return Cell{}
	}
	return c.cells[row*c.cols+col]
}

// Clear resets all cells to blank background using exponential copy
func (c *Canvas) Clear() {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Rune: ' ', Fg: c.cfg.Background, Bg: c.cfg.Background}
	c.ink[0] = 0
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
	for filled := 1; filled < len(c.ink); filled *= 2 {
		copy(c.ink[filled:], c.ink[:filled])
	}
}

func (c *Canvas) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *Canvas) cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cfg.CellWidth)), int(math.Floor(y / c.cfg.CellHeight))
}

// FillCircle draws a disc of radius r centered at x,y
func (c *Canvas) FillCircle(x, y, r float64, color RGBA, st Stroke) {
	if len(c.cells) == 0 {
		return
	}
	alpha := color.A * st.Alpha
	if alpha <= 0 || r <= 0 {
		return
	}

	if st.Glow > 0 {
		c.glow(x, y, r+st.Glow, color.RGB, alpha)
	}

	// Discs wider than a cell spill a tint into neighbouring backgrounds
	if 2*r > c.cfg.CellWidth {
		c.tintDisc(x, y, r, color.RGB, alpha*0.5)
	}

	col, row := c.cellOf(x, y)
	c.plot(col, row, discGlyph(r), color.RGB, alpha)
}

// StrokeLine draws a line segment of the given width
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, color RGBA, st Stroke) {
	if len(c.cells) == 0 {
		return
	}
	alpha := color.A * st.Alpha * math.Min(1, width*2)
	if alpha <= 0 {
		return
	}

	if st.Glow > 0 {
		c.glow((x0+x1)/2, (y0+y1)/2, st.Glow, color.RGB, alpha)
	}

	glyph := lineGlyph(x1-x0, y1-y0)

	// DDA in cell space
	fc0, fr0 := x0/c.cfg.CellWidth, y0/c.cfg.CellHeight
	fc1, fr1 := x1/c.cfg.CellWidth, y1/c.cfg.CellHeight
	steps := int(math.Ceil(math.Max(math.Abs(fc1-fc0), math.Abs(fr1-fr0))))
	if steps < 1 {
		steps = 1
	}

	lastCol, lastRow := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Floor(fc0 + (fc1-fc0)*t))
		row := int(math.Floor(fr0 + (fr1-fr0)*t))
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		c.plot(col, row, glyph, color.RGB, alpha)
	}
}

// DrawText writes an overlay string at a cell position, always winning over particle glyphs
// Wide runes occupy two cells; the trailing cell gets Rune 0
func (c *Canvas) DrawText(col, row int, text string, fg RGB) int {
	if row < 0 || row >= c.rows {
		return col
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			break
		}
		if col >= 0 {
			idx := row*c.cols + col
			cell := &c.cells[idx]
			cell.Rune = r
			cell.Fg = fg
			cell.Bg = Scale(cell.Bg, 0.5)
			c.ink[idx] = math.Inf(1)
			if w == 2 {
				next := &c.cells[idx+1]
				next.Rune = 0
				next.Bg = cell.Bg
				c.ink[idx+1] = math.Inf(1)
			}
		}
		col += w
	}
	return col
}

// plot writes a glyph unless the cell already holds stronger ink
func (c *Canvas) plot(col, row int, glyph rune, color RGB, alpha float64) {
	if !c.inBounds(col, row) {
		return
	}
	idx := row*c.cols + col
	if alpha < c.ink[idx] {
		return
	}
	c.ink[idx] = alpha

	cell := &c.cells[idx]
	cell.Rune = glyph
	cell.Fg = Mix(cell.Bg, color, alpha*c.cfg.GlyphGain)
}

// glow adds a quadratic-falloff halo to cell backgrounds within radius
func (c *Canvas) glow(x, y, radius float64, color RGB, alpha float64) {
	if c.cfg.GlowGain <= 0 {
		return
	}
	c.eachCellWithin(x, y, radius, func(idx int, d float64) {
		f := 1 - d/radius
		c.cells[idx].Bg = Add(c.cells[idx].Bg, Scale(color, f*f*alpha*c.cfg.GlowGain), 1.0)
	})
}

func (c *Canvas) tintDisc(x, y, r float64, color RGB, alpha float64) {
	c.eachCellWithin(x, y, r, func(idx int, _ float64) {
		c.cells[idx].Bg = Blend(c.cells[idx].Bg, color, alpha)
	})
}

// eachCellWithin visits cells whose center lies strictly within radius of x,y
func (c *Canvas) eachCellWithin(x, y, radius float64, fn func(idx int, d float64)) {
	minCol, minRow := c.cellOf(x-radius, y-radius)
	maxCol, maxRow := c.cellOf(x+radius, y+radius)
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, c.cols-1), min(maxRow, c.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx, cy := c.CellCenter(col, row)
			d := math.Hypot(cx-x, cy-y)
			if d < radius {
				fn(row*c.cols+col, d)
			}
		}
	}
}

func discGlyph(r float64) rune {
	switch {
	case r < 1.5:
		return '·'
	case r < 2.5:
		return '•'
	default:
		return '●'
	}
}

// lineGlyph picks a box-drawing stroke from the segment direction (y grows down)
func lineGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ax < ay*0.4:
		return '│'
	case ay < ax*0.4:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}
