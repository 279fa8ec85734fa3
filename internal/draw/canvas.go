package draw

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/muesli/termenv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an ANSI 256-color palette index.
type Color = termenv.ANSI256Color

// empty marks an unset sub-pixel; dirty marks a cell that must be redrawn.
const (
	empty = -1
	dirty = -2
)

// cell is what one terminal cell shows: the top and bottom sub-pixel colors.
type cell struct {
	top, bottom int16
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. It scales logical coordinates to terminal cells and
// only re-emits cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []int16 // Flat slice: [y * termWidth + x], palette index or empty
	prev           []cell  // What the terminal shows, per cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	numBuf          [8]byte
	intersectionBuf []float64 // Reusable buffer for scanline intersections
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]int16, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.Clear()
		c.ForceRedraw()
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = empty
	}
}

// ForceRedraw makes the next Render emit every cell, e.g. after the screen
// was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = cell{dirty, dirty}
	}
}

// MarkTextDirty marks width cells starting at the 1-based (col, row) as
// overwritten by text, so the canvas repaints them on the next Render.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.prev[r*c.termWidth+x] = cell{dirty, dirty}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = int16(color)
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set sets a pixel using logical coordinates.
func (c *Canvas) Set(x, y float64, color Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, color)
}

// FillRect fills the logical rectangle [x0, x1) x [y0, y1). Any non-empty
// rectangle covers at least one pixel.
func (c *Canvas) FillRect(x0, y0, x1, y1 float64, color Color) {
	px0, py0 := int(math.Floor(x0*c.scaleX)), int(math.Floor(y0*c.scaleY))
	px1, py1 := int(math.Ceil(x1*c.scaleX)), int(math.Ceil(y1*c.scaleY))
	px1 = max(px1, px0+1)
	py1 = max(py1, py0+1)
	for y := max(py0, 0); y < min(py1, c.subPixelHeight); y++ {
		for x := max(px0, 0); x < min(px1, c.termWidth); x++ {
			c.pixels[y*c.termWidth+x] = int16(color)
		}
	}
}

// FillEllipse fills an axis-aligned ellipse given in logical coordinates.
// Tiny ellipses still cover their centre pixel.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, color Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	prx, pry := rx*c.scaleX, ry*c.scaleY
	c.Set(cx, cy, color)
	if prx <= 0 || pry <= 0 {
		return
	}
	for y := int(math.Floor(pcy - pry)); y <= int(math.Ceil(pcy+pry)); y++ {
		dy := (float64(y) + 0.5 - pcy) / pry
		if dy*dy > 1 {
			continue
		}
		half := prx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(pcx - half - 0.5)); x <= int(math.Floor(pcx+half-0.5)); x++ {
			c.setPixel(x, y, color)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon using the scanline algorithm and outlines it.
func (c *Canvas) FillPolygon(points []Point, color Color) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y*c.scaleY, points[0].Y*c.scaleY
	for _, p := range points {
		minY = math.Min(minY, p.Y*c.scaleY)
		maxY = math.Max(maxY, p.Y*c.scaleY)
	}

	n := len(points)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]
		for i := 0; i < n; i++ {
			x1, y1 := points[i].X*c.scaleX, points[i].Y*c.scaleY
			x2, y2 := points[(i+1)%n].X*c.scaleX, points[(i+1)%n].Y*c.scaleY
			if (y1 <= scanY && y2 > scanY) || (y2 <= scanY && y1 > scanY) {
				t := (scanY - y1) / (y2 - y1)
				intersections = append(intersections, x1+t*(x2-x1))
			}
		}
		c.intersectionBuf = intersections
		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y, color)
			}
		}
	}

	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], color)
	}
}

// Render writes every changed cell to w using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	var out []byte
	cursorRow, cursorCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cur := cell{
				top:    c.pixels[(row*2)*c.termWidth+col],
				bottom: c.pixels[(row*2+1)*c.termWidth+col],
			}
			i := row*c.termWidth + col
			if c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if row != cursorRow || col != cursorCol {
				out = append(out, "\033["...)
				out = strconv.AppendInt(out, int64(row+1+c.offsetRow), 10)
				out = append(out, ';')
				out = strconv.AppendInt(out, int64(col+1+c.offsetCol), 10)
				out = append(out, 'H')
			}
			out = appendCell(out, cur)
			cursorRow, cursorCol = row, col+1
		}
	}
	if len(out) > 0 {
		out = append(out, "\033[0m"...)
		_, _ = w.Write(out)
	}
}

// appendCell emits the SGR colors and glyph for one cell.
func appendCell(out []byte, cur cell) []byte {
	out = append(out, "\033[0"...)
	var glyph rune
	switch {
	case cur.top == empty && cur.bottom == empty:
		return append(out, "m "...)
	case cur.top == cur.bottom:
		out = appendColor(out, cur.top, false)
		glyph = BlockFull
	case cur.bottom == empty:
		out = appendColor(out, cur.top, false)
		glyph = BlockUpperHalf
	case cur.top == empty:
		out = appendColor(out, cur.bottom, false)
		glyph = BlockLowerHalf
	default:
		out = appendColor(out, cur.top, false)
		out = appendColor(out, cur.bottom, true)
		glyph = BlockUpperHalf
	}
	out = append(out, 'm')
	return append(out, string(glyph)...)
}

func appendColor(out []byte, index int16, bg bool) []byte {
	out = append(out, ';')
	return append(out, Color(index).Sequence(bg)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions in absolute 1-based terminal coordinates.
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	bar := repeat('─', c.termWidth)
	if hasV {
		if hasH {
			cw.WriteAbs(left, top, "┌"+bar+"┐")
			cw.WriteAbs(left, bottom, "└"+bar+"┘")
		} else {
			cw.WriteAbs(c.offsetCol+1, top, bar)
			cw.WriteAbs(c.offsetCol+1, bottom, bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			cw.WriteAbs(left, row, "│")
			cw.WriteAbs(right, row, "│")
		}
	}
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based render area
// position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts an absolute 1-based terminal position, as
// reported by mouse events, to logical coordinates. It inverts
// LogicalToTerminal.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col - 1 - c.offsetCol)
	py := float64(row-1-c.offsetRow) * 2
	return px / c.scaleX, py / c.scaleY
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func repeat(r rune, n int) string {
	out := make([]rune, max(n, 0))
	for i := range out {
		out[i] = r
	}
	return string(out)
}
