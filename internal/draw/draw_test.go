package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestXterm256(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint8
	}{
		{"black", Black, 16},
		{"white", White, 231},
		{"red", RGB(255, 0, 0), 196},
		{"mid gray", RGB(128, 128, 128), 244},
		{"near black gray", RGB(8, 8, 8), 232},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Xterm256(); got != tt.want {
				t.Errorf("Xterm256(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestColorConstructors(t *testing.T) {
	if got := Hex("#ff0000"); got != RGB(255, 0, 0) {
		t.Errorf("Hex = %v, want red", got)
	}
	if got := Hex("not-a-color"); got != White {
		t.Errorf("invalid hex = %v, want white", got)
	}
	if got := HSL(0, 1, 0.5); got != RGB(255, 0, 0) {
		t.Errorf("HSL(0,1,.5) = %v, want red", got)
	}
	if got := Black.Blend(White, 0); got != Black {
		t.Errorf("Blend(0) = %v, want black", got)
	}
	if got := Black.Blend(White, 1); got != White {
		t.Errorf("Blend(1) = %v, want white", got)
	}
	if got := Black.Blend(White, 0.5); got.R < 126 || got.R > 129 {
		t.Errorf("Blend(.5) = %v, want mid gray", got)
	}
	if got := RGB(200, 100, 50).Scale(0.5); got != RGB(100, 50, 25) {
		t.Errorf("Scale = %v", got)
	}
	if got := RGB(200, 100, 50).Scale(2); got != RGB(255, 200, 100) {
		t.Errorf("Scale clamp = %v", got)
	}
}

func TestFillRectCoversCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetColor(RGB(0, 255, 0))
	c.FillRect(0, 0, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			col, ok := c.Pixel(x, y)
			if !ok || col != RGB(0, 255, 0) {
				t.Fatalf("pixel (%d,%d) = %v,%v", x, y, col, ok)
			}
		}
	}
}

func TestAlphaBlending(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetColor(RGB(255, 0, 0))
	c.SetAlpha(0.5)
	c.Plot(0, 0)
	col, ok := c.Pixel(0, 0)
	if !ok {
		t.Fatal("half-transparent paint should set the pixel")
	}
	if col.R < 126 || col.R > 129 || col.G != 0 {
		t.Errorf("blended over black = %v, want ~(128,0,0)", col)
	}

	c.SetAlpha(0.01)
	c.Plot(1, 0)
	if _, ok := c.Pixel(1, 0); ok {
		t.Error("nearly transparent paint should be discarded")
	}

	c.SetAlpha(5)
	if c.Alpha() != 1 {
		t.Errorf("alpha clamp = %f, want 1", c.Alpha())
	}
}

func TestTranslate(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Translate(3, 2)
	c.Plot(1, 1)
	if _, ok := c.Pixel(4, 3); !ok {
		t.Error("translated plot should land at (4,3)")
	}
	c.Clear()
	c.Plot(1, 1)
	if _, ok := c.Pixel(1, 1); !ok {
		t.Error("Clear should reset the translation")
	}
}

func TestScaledCanvas(t *testing.T) {
	// 80 logical units per column and per sub-row.
	c := NewScaledCanvas(10, 5, 800, 800)
	c.Plot(400, 400)
	if _, ok := c.Pixel(5, 5); !ok {
		t.Error("logical center should map to sub-pixel (5,5)")
	}
	col, row := c.LogicalToTerminal(400, 400)
	if col != 6 || row != 3 {
		t.Errorf("LogicalToTerminal = (%d,%d), want (6,3)", col, row)
	}

	c.SetLogicalSize(80, 80)
	c.Clear()
	c.Plot(40, 40)
	if _, ok := c.Pixel(5, 5); !ok {
		t.Error("SetLogicalSize should rescale")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(10, 10, 4)
	if _, ok := c.Pixel(10, 10); !ok {
		t.Error("center should be filled")
	}
	if _, ok := c.Pixel(10, 4); ok {
		t.Error("pixel outside the radius should stay empty")
	}

	c.Clear()
	c.FillCircle(3.2, 3.2, 0.1)
	if _, ok := c.Pixel(3, 3); !ok {
		t.Error("tiny disc should still paint its center")
	}
}

func TestDrawCircleLeavesCenterEmpty(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(10, 10, 6)
	if _, ok := c.Pixel(10, 10); ok {
		t.Error("outline should not fill the center")
	}
	if _, ok := c.Pixel(16, 10); !ok {
		t.Error("outline should pass through the rightmost point")
	}
}

func TestFilledPolygon(t *testing.T) {
	c := NewCanvas(20, 10)
	tri := []Point{{X: 2, Y: 2}, {X: 18, Y: 2}, {X: 10, Y: 18}}
	c.DrawPolygon(tri, true)
	if _, ok := c.Pixel(10, 6); !ok {
		t.Error("triangle interior should be filled")
	}
	if _, ok := c.Pixel(1, 17); ok {
		t.Error("outside the triangle should stay empty")
	}
}

func TestDrawLineOffscreenIsSkipped(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(Point{X: -100, Y: 1}, Point{X: -50, Y: 1})
	for x := 0; x < 4; x++ {
		if _, ok := c.Pixel(x, 1); ok {
			t.Fatal("fully offscreen line painted a pixel")
		}
	}
}

func TestSampleNormalizedCoordinates(t *testing.T) {
	c := NewCanvas(10, 5)
	var minU, maxU = 2.0, -2.0
	c.Sample(5, 5, 4, func(u, v float64) (Color, float64, bool) {
		if u < minU {
			minU = u
		}
		if u > maxU {
			maxU = u
		}
		if v < -1 || v > 1 {
			t.Errorf("v out of range: %f", v)
		}
		return White, 1, u < 0
	})
	if minU < -1 || maxU > 1 || minU > -0.5 || maxU < 0.5 {
		t.Errorf("u range = [%f,%f]", minU, maxU)
	}
	if _, ok := c.Pixel(3, 5); !ok {
		t.Error("left half should be painted")
	}
	if _, ok := c.Pixel(7, 5); ok {
		t.Error("right half should be transparent")
	}
}

func TestRenderEmitsOnlyChanges(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetColor(RGB(255, 0, 0))
	c.FillRect(0, 0, 1, 2)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "\033[38;5;196m█") {
		t.Errorf("first render missing red full block: %q", out)
	}
	if !strings.HasPrefix(out, "\033[1;1H") {
		t.Errorf("first render should start at the origin: %q", out)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Errorf("unchanged frame rendered %q", buf.String())
	}

	c.MarkTextDirty(3, 1, 1)
	buf.Reset()
	c.Render(&buf)
	if got := buf.String(); got != "\033[1;3H " {
		t.Errorf("dirty cell render = %q", got)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if strings.Count(buf.String(), "█") != 1 {
		t.Errorf("forced redraw should repaint every cell: %q", buf.String())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetColor(RGB(255, 0, 0))
	c.Plot(0, 0)
	c.SetColor(RGB(0, 0, 255))
	c.Plot(1, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "▀") || !strings.Contains(out, "▄") {
		t.Errorf("expected upper and lower half blocks: %q", out)
	}
	if !strings.HasSuffix(out, ColorReset) {
		t.Errorf("render should reset colors: %q", out)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[2;3Hhi" {
		t.Errorf("WriteAt = %q", got)
	}
}

func TestChunkWriterClearAndChunks(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	cw.Clear()
	cw.WriteString(strings.Repeat("x", maxChunkSize*2+5))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\033[H\033[2J") {
		t.Errorf("clear not queued first: %q", out[:8])
	}
	if strings.Count(out, "x") != maxChunkSize*2+5 {
		t.Errorf("flushed %d bytes of text", strings.Count(out, "x"))
	}

	buf.Reset()
	if err := cw.Flush(); err != nil || buf.Len() != 0 {
		t.Errorf("second flush wrote %q, err %v", buf.String(), err)
	}
}

func TestTerminalModes(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Enter()
	enter := buf.String()
	for _, seq := range []string{"\033[?25l", "\033[?1000h", "\033[?1006h", "\033[2J"} {
		if !strings.Contains(enter, seq) {
			t.Errorf("Enter missing %q in %q", seq, enter)
		}
	}

	buf.Reset()
	term.Leave()
	leave := buf.String()
	for _, seq := range []string{"\033[?25h", "\033[?1000l", "\033[?1006l"} {
		if !strings.Contains(leave, seq) {
			t.Errorf("Leave missing %q in %q", seq, leave)
		}
	}
}
