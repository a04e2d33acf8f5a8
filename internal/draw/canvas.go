package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// minAlpha is the opacity below which paint is discarded.
const minAlpha = 0.02

// cell is the quantized content of one terminal cell.
type cell struct {
	top, bot uint8 // xterm palette indices
	mask     uint8 // cellTop | cellBot
}

const (
	cellTop uint8 = 1 << iota
	cellBot
)

// SampleFunc returns the paint for a point at normalized offset (u,v) in
// [-1,1] from the center of a sampled square. ok is false for transparent points.
type SampleFunc func(u, v float64) (c Color, alpha float64, ok bool)

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Shapes are given in logical coordinates, scaled to
// terminal sub-pixels and painted with the current color and alpha.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	set            []bool  // Whether the pixel was painted this frame
	prev           []cell  // Cells emitted by the last Render
	prevValid      []bool  // false forces the cell to be re-emitted

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Paint state
	originX, originY float64 // Logical translation applied to every shape
	color            Color
	alpha            float64

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
	ringBuf         []Point
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping between logical units and sub-pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		color:         White,
		alpha:         1,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		subPixelHeight := termHeight * 2
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.prevValid = make([]bool, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.updateScale()
}

// SetLogicalSize changes the logical coordinate space mapped onto the terminal.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.updateScale()
}

func (c *Canvas) updateScale() {
	c.scaleX, c.scaleY = 0, 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(c.termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
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

// Clear resets all pixels and the paint state.
func (c *Canvas) Clear() {
	clear(c.set)
	c.ResetTransform()
	c.color = White
	c.alpha = 1
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prevValid)
}

// MarkTextDirty marks n cells starting at 1-based canvas position (col,row)
// as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for i := col - 1; i < col-1+n; i++ {
		if i >= 0 && i < c.termWidth {
			c.prevValid[r*c.termWidth+i] = false
		}
	}
}

// SetColor sets the paint color.
func (c *Canvas) SetColor(col Color) {
	c.color = col
}

// SetAlpha sets the paint opacity, clamped to [0,1].
func (c *Canvas) SetAlpha(a float64) {
	switch {
	case a < 0 || math.IsNaN(a):
		a = 0
	case a > 1:
		a = 1
	}
	c.alpha = a
}

// Alpha returns the current paint opacity.
func (c *Canvas) Alpha() float64 {
	return c.alpha
}

// Translate shifts every subsequent shape by (dx,dy) logical units.
func (c *Canvas) Translate(dx, dy float64) {
	c.originX += dx
	c.originY += dy
}

// ResetTransform removes any translation.
func (c *Canvas) ResetTransform() {
	c.originX, c.originY = 0, 0
}

// toPixel maps a logical point to fractional sub-pixel coordinates.
func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return (x + c.originX) * c.scaleX, (y + c.originY) * c.scaleY
}

// paint blends col at the given opacity into a sub-pixel.
func (c *Canvas) paint(x, y int, col Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || alpha < minAlpha {
		return
	}
	i := y*c.termWidth + x
	switch {
	case alpha >= 1:
		c.pixels[i] = col
	case c.set[i]:
		c.pixels[i] = c.pixels[i].Blend(col, alpha)
	default:
		c.pixels[i] = Black.Blend(col, alpha)
	}
	c.set[i] = true
}

// setPixel paints a sub-pixel with the current color and alpha.
func (c *Canvas) setPixel(x, y int) {
	c.paint(x, y, c.color, c.alpha)
}

// Pixel returns the color at sub-pixel (x,y) and whether it was painted this frame.
func (c *Canvas) Pixel(x, y int) (Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Color{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// Plot paints the sub-pixel under a logical point.
func (c *Canvas) Plot(x, y float64) {
	px, py := c.toPixel(x, y)
	c.setPixel(int(math.Round(px)), int(math.Round(py)))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	fx1, fy1 := c.toPixel(p1.X, p1.Y)
	fx2, fy2 := c.toPixel(p2.X, p2.Y)
	if !finite(fx1, fy1, fx2, fy2) {
		return
	}
	if (fx1 < 0 && fx2 < 0) || (fy1 < 0 && fy2 < 0) ||
		(fx1 >= float64(c.termWidth) && fx2 >= float64(c.termWidth)) ||
		(fy1 >= float64(c.subPixelHeight) && fy2 >= float64(c.subPixelHeight)) {
		return
	}
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 := int(math.Round(fx2)), int(math.Round(fy2))

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
		c.setPixel(x1, y1)

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

// DrawPolyline draws connected segments through the points.
func (c *Canvas) DrawPolyline(points []Point) {
	for i := 0; i+1 < len(points); i++ {
		c.DrawLine(points[i], points[i+1])
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
		return
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		x, y := c.toPixel(p.X, p.Y)
		if !finite(x, y) {
			return
		}
		scaled[i] = Point{X: x, Y: y}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i]-0.5)), 0)
			xEnd := min(int(math.Floor(intersections[i+1]-0.5)), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// FillCircle fills a disc. A disc smaller than a sub-pixel still paints
// the sub-pixel under its center.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	pcx, pcy := c.toPixel(cx, cy)
	rx, ry := r*c.scaleX, r*c.scaleY
	if !finite(pcx, pcy, rx, ry) || r <= 0 {
		return
	}

	drawn := false
	yStart := max(int(math.Floor(pcy-ry)), 0)
	yEnd := min(int(math.Ceil(pcy+ry)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := max(int(math.Ceil(pcx-half-0.5)), 0)
		xEnd := min(int(math.Floor(pcx+half-0.5)), c.termWidth-1)
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y)
			drawn = true
		}
	}
	if !drawn {
		c.setPixel(int(math.Floor(pcx)), int(math.Floor(pcy)))
	}
}

// DrawCircle draws a circle outline as a polygon fine enough for its size.
func (c *Canvas) DrawCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	span := math.Max(r*c.scaleX, r*c.scaleY)
	n := int(2 * math.Pi * span / 1.5)
	n = min(max(n, 8), 128)

	if cap(c.ringBuf) < n {
		c.ringBuf = make([]Point, n)
	}
	ring := c.ringBuf[:n]
	for i := range ring {
		a := float64(i) / float64(n) * 2 * math.Pi
		ring[i] = Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	c.DrawPolygon(ring, false)
}

// FillRect fills an axis-aligned rectangle with its top-left corner at (x,y).
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	px0, py0 := c.toPixel(x, y)
	px1, py1 := c.toPixel(x+w, y+h)
	if !finite(px0, py0, px1, py1) {
		return
	}
	xStart := max(int(math.Floor(px0)), 0)
	xEnd := min(int(math.Ceil(px1))-1, c.termWidth-1)
	yStart := max(int(math.Floor(py0)), 0)
	yEnd := min(int(math.Ceil(py1))-1, c.subPixelHeight-1)
	for py := yStart; py <= yEnd; py++ {
		for px := xStart; px <= xEnd; px++ {
			c.setPixel(px, py)
		}
	}
}

// Sample paints the square of half-size half centered at (cx,cy) by asking
// fn for every covered sub-pixel. The returned alpha is multiplied by the
// current paint alpha.
func (c *Canvas) Sample(cx, cy, half float64, fn SampleFunc) {
	if half <= 0 || c.scaleX <= 0 || c.scaleY <= 0 {
		return
	}
	px0, py0 := c.toPixel(cx-half, cy-half)
	px1, py1 := c.toPixel(cx+half, cy+half)
	if !finite(px0, py0, px1, py1) {
		return
	}
	xStart := max(int(math.Floor(px0)), 0)
	xEnd := min(int(math.Ceil(px1)), c.termWidth-1)
	yStart := max(int(math.Floor(py0)), 0)
	yEnd := min(int(math.Ceil(py1)), c.subPixelHeight-1)

	for py := yStart; py <= yEnd; py++ {
		ly := (float64(py)+0.5)/c.scaleY - c.originY
		v := (ly - cy) / half
		if v < -1 || v > 1 {
			continue
		}
		for px := xStart; px <= xEnd; px++ {
			lx := (float64(px)+0.5)/c.scaleX - c.originX
			u := (lx - cx) / half
			if u < -1 || u > 1 {
				continue
			}
			col, a, ok := fn(u, v)
			if !ok {
				continue
			}
			c.paint(px, py, col, a*c.alpha)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the last Render using
// half-block characters and xterm 256-color escapes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	fg, bg := -1, -1 // -1 is the terminal default
	curRow, curCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			var cl cell
			if c.set[topOffset+col] {
				cl.mask |= cellTop
				cl.top = c.pixels[topOffset+col].Xterm256()
			}
			if c.set[bottomOffset+col] {
				cl.mask |= cellBot
				cl.bot = c.pixels[bottomOffset+col].Xterm256()
			}

			i := row*c.termWidth + col
			if c.prevValid[i] && c.prev[i] == cl {
				continue
			}
			c.prev[i] = cl
			c.prevValid[i] = true

			if row != curRow || col != curCol {
				c.writeCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}

			var ch rune
			switch {
			case cl.mask == cellTop|cellBot && cl.top == cl.bot:
				c.setFg(&fg, int(cl.top))
				ch = BlockFull
			case cl.mask == cellTop|cellBot:
				c.setFg(&fg, int(cl.top))
				c.setBg(&bg, int(cl.bot))
				ch = BlockUpperHalf
			case cl.mask == cellTop:
				c.setFg(&fg, int(cl.top))
				c.setBg(&bg, -1)
				ch = BlockUpperHalf
			case cl.mask == cellBot:
				c.setFg(&fg, int(cl.bot))
				c.setBg(&bg, -1)
				ch = BlockLowerHalf
			default:
				c.setBg(&bg, -1)
				ch = BlockEmpty
			}
			c.renderBuf.WriteRune(ch)
			curRow, curCol = row, col+1
		}
	}
	if fg != -1 || bg != -1 {
		c.renderBuf.WriteString(ColorReset)
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) writeCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) setFg(cur *int, want int) {
	if *cur == want {
		return
	}
	*cur = want
	c.renderBuf.WriteString("\033[38;5;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(want), 10))
	c.renderBuf.WriteByte('m')
}

func (c *Canvas) setBg(cur *int, want int) {
	if *cur == want {
		return
	}
	*cur = want
	if want < 0 {
		c.renderBuf.WriteString("\033[49m")
		return
	}
	c.renderBuf.WriteString("\033[48;5;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(want), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// Translation is ignored so overlays stay put while the scene shakes.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
