package backend

import "testing"

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, "")
	if c.grid[0][0] != 0x2801 {
		t.Errorf("expected top-left dot 0x2801, got %x", c.grid[0][0])
	}

	// out of bounds must not panic or wrap
	c.Set(-1, 0, "")
	c.Set(100, 100, "")
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(0, 0, 19, 19, "")
	if c.grid[0][0] == 0x2800 {
		t.Error("line start cell should be lit")
	}
	if c.grid[4][9] == 0x2800 {
		t.Error("line end cell should be lit")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(1, 1, "#fff")
	c.Clear()
	for i := range c.grid {
		for j := range c.grid[i] {
			if c.grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
			if c.colors[i][j] != "" {
				t.Fatalf("color (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestCanvasColorPaint(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, "#ff0000")
	painted := 0
	c.Rows(func(s, color string) string {
		if color == "#ff0000" {
			painted++
		}
		return s
	})
	if painted != 1 {
		t.Errorf("expected exactly one painted cell, got %d", painted)
	}
}
