package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasScaling(t *testing.T) {
	// 960x640 arena onto 120 columns x 40 rows (80 sub-pixel rows).
	c := NewScaledCanvas(120, 40, 960, 640)
	c.SetFloat(480, 320, Red)
	if got := c.Pixel(60, 40); got != Red {
		t.Fatalf("pixel (60,40) = %v, want Red", got)
	}
	c.SetFloat(-10, 5000, Blue) // Off-canvas writes are dropped.
	col, row := c.LogicalToTerminal(480, 320)
	if col != 61 || row != 21 {
		t.Fatalf("LogicalToTerminal = (%d,%d), want (61,21)", col, row)
	}
}

func TestDrawLine(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{0, 0}, Point{9, 9}, Green)
	for i := 0; i < 10; i++ {
		if c.Pixel(i, i) != Green {
			t.Fatalf("diagonal pixel %d not set", i)
		}
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawCircle(Point{20, 20}, 10, true, Yellow)
	if c.Pixel(20, 20) != Yellow {
		t.Fatal("filled circle center not set")
	}
	if c.Pixel(20, 7) != Off {
		t.Fatal("circle drawn outside its radius")
	}
	if c.Pixel(0, 0) != Off {
		t.Fatal("corner set by circle")
	}

	c.Clear()
	c.DrawCircle(Point{20, 20}, 10, false, Yellow)
	if c.Pixel(20, 20) != Off {
		t.Fatal("outline circle filled its center")
	}
}

func TestRenderDiff(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(1, 0, Red)
	c.SetFloat(1, 1, Red)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), string(BlockFull)) {
		t.Fatalf("first render %q has no full block", out.String())
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame emitted %q", out.String())
	}

	c.Clear()
	out.Reset()
	c.Render(&out)
	if !strings.Contains(out.String(), "\033[1;2H ") {
		t.Fatalf("cleared cell not blanked: %q", out.String())
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "H "); got != 8 {
		t.Fatalf("forced redraw emitted %d blank cells, want 8", got)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.SetFloat(0, 0, Red) // top only
	c.SetFloat(1, 1, Red) // bottom only
	c.SetFloat(2, 0, Red) // top and bottom differ
	c.SetFloat(2, 1, Blue)
	var out bytes.Buffer
	c.Render(&out)
	s := out.String()
	if strings.Count(s, string(BlockUpperHalf)) != 2 || strings.Count(s, string(BlockLowerHalf)) != 1 {
		t.Fatalf("unexpected half blocks in %q", s)
	}
	if !strings.Contains(s, "\033[48;5;") {
		t.Fatalf("two-color cell has no background: %q", s)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(5, 2, 5, 4)
	var out bytes.Buffer
	c.Render(&out)
	c.MarkTextDirty(2, 1, 3)
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "H "); got != 3 {
		t.Fatalf("dirty text repaint emitted %d cells, want 3", got)
	}
}

func TestFitArena(t *testing.T) {
	tests := []struct {
		w, h, max              int
		rw, rh, offCol, offRow int
	}{
		{120, 40, 0, 120, 40, 0, 0},
		{200, 40, 0, 120, 40, 40, 0},
		{120, 60, 0, 120, 40, 0, 10},
		{200, 100, 150, 150, 50, 25, 25},
	}
	for _, tt := range tests {
		rw, rh, oc, or := FitArena(tt.w, tt.h, 960, 640, tt.max)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("FitArena(%d,%d,max %d) = %d,%d,%d,%d want %d,%d,%d,%d",
				tt.w, tt.h, tt.max, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestParseColor(t *testing.T) {
	if ParseColor("Red") != Red || ParseColor("unknown") != White {
		t.Fatal("ParseColor mismatch")
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Fatalf("output = %q", got)
	}
}
