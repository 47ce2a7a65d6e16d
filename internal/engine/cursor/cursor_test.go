package cursor

import (
	"testing"

	"github.com/dshills/keysync/internal/engine/buffer"
)

// Cursor Tests

func TestNewCursorNegative(t *testing.T) {
	c := New(Point{Line: -1, Column: -5})
	if c.Point() != (Point{}) {
		t.Errorf("negative point should clamp to (0:0), got %v", c.Point())
	}
}

func TestCursorNavigation(t *testing.T) {
	doc := buffer.NewFromString("Hello\nab\nWorld!")

	tests := []struct {
		name  string
		start Point
		move  func(Cursor) Cursor
		want  Point
	}{
		{"up clamps column", Point{Line: 2, Column: 6}, func(c Cursor) Cursor { return c.Up(doc) }, Point{Line: 1, Column: 2}},
		{"up on first line", Point{Line: 0, Column: 3}, func(c Cursor) Cursor { return c.Up(doc) }, Point{Line: 0, Column: 3}},
		{"down clamps column", Point{Line: 0, Column: 5}, func(c Cursor) Cursor { return c.Down(doc) }, Point{Line: 1, Column: 2}},
		{"down keeps column", Point{Line: 1, Column: 1}, func(c Cursor) Cursor { return c.Down(doc) }, Point{Line: 2, Column: 1}},
		{"down on last line", Point{Line: 2, Column: 3}, func(c Cursor) Cursor { return c.Down(doc) }, Point{Line: 2, Column: 3}},
		{"left", Point{Line: 0, Column: 3}, func(c Cursor) Cursor { return c.Left(doc) }, Point{Line: 0, Column: 2}},
		{"left wraps", Point{Line: 1, Column: 0}, func(c Cursor) Cursor { return c.Left(doc) }, Point{Line: 0, Column: 5}},
		{"left at start", Point{Line: 0, Column: 0}, func(c Cursor) Cursor { return c.Left(doc) }, Point{Line: 0, Column: 0}},
		{"right", Point{Line: 0, Column: 3}, func(c Cursor) Cursor { return c.Right(doc) }, Point{Line: 0, Column: 4}},
		{"right wraps", Point{Line: 0, Column: 5}, func(c Cursor) Cursor { return c.Right(doc) }, Point{Line: 1, Column: 0}},
		{"right at end", Point{Line: 2, Column: 6}, func(c Cursor) Cursor { return c.Right(doc) }, Point{Line: 2, Column: 6}},
		{"home", Point{Line: 2, Column: 4}, func(c Cursor) Cursor { return c.Home() }, Point{Line: 2, Column: 0}},
		{"end", Point{Line: 0, Column: 1}, func(c Cursor) Cursor { return c.End(doc) }, Point{Line: 0, Column: 5}},
		{"page up", Point{Line: 2, Column: 4}, func(c Cursor) Cursor { return c.PageUp(doc, 10) }, Point{Line: 0, Column: 2}},
		{"page down", Point{Line: 0, Column: 4}, func(c Cursor) Cursor { return c.PageDown(doc, 1) }, Point{Line: 1, Column: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.move(New(tt.start)).Point()
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCursorClamp(t *testing.T) {
	doc := buffer.NewFromString("abc\nd")

	c := New(Point{Line: 5, Column: 9}).Clamp(doc)
	if c.Point() != (Point{Line: 1, Column: 1}) {
		t.Errorf("expected (1:1), got %v", c.Point())
	}

	c = New(Point{Line: 0, Column: 9}).Clamp(doc)
	if c.Point() != (Point{Line: 0, Column: 3}) {
		t.Errorf("expected (0:3), got %v", c.Point())
	}
}

func TestCursorString(t *testing.T) {
	a := New(Point{Line: 1, Column: 1})

	if a.String() != "Cursor(1:1)" {
		t.Errorf("unexpected string %q", a.String())
	}
}

// Viewport Tests

func TestViewportScroll(t *testing.T) {
	tests := []struct {
		name     string
		start    Viewport
		cursor   Point
		wantTop  int
		wantLeft int
	}{
		{"visible", Viewport{Top: 0, Rows: 10, Cols: 20}, Point{Line: 5, Column: 5}, 0, 0},
		{"above top", Viewport{Top: 8, Rows: 10, Cols: 20}, Point{Line: 3, Column: 0}, 3, 0},
		{"at bottom edge", Viewport{Top: 0, Rows: 10, Cols: 20}, Point{Line: 10, Column: 0}, 1, 0},
		{"far below", Viewport{Top: 0, Rows: 10, Cols: 20}, Point{Line: 42, Column: 0}, 33, 0},
		{"last visible row", Viewport{Top: 0, Rows: 10, Cols: 20}, Point{Line: 9, Column: 0}, 0, 0},
		{"left of window", Viewport{Left: 15, Rows: 10, Cols: 20}, Point{Line: 0, Column: 4}, 0, 4},
		{"right edge", Viewport{Rows: 10, Cols: 20}, Point{Line: 0, Column: 20}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			p := tt.cursor
			v.Scroll(p)
			if v.Top != tt.wantTop || v.Left != tt.wantLeft {
				t.Errorf("scroll = (top %d, left %d), want (top %d, left %d)", v.Top, v.Left, tt.wantTop, tt.wantLeft)
			}
			if p != tt.cursor {
				t.Error("scroll must not move the cursor")
			}
			if p.Line < v.Top || p.Line >= v.Top+v.Rows || p.Column < v.Left || p.Column >= v.Left+v.Cols {
				t.Errorf("cursor %v not visible in %+v", p, v)
			}
		})
	}
}

func TestViewportResize(t *testing.T) {
	v := NewViewport(0, -3)
	if v.Rows != 1 || v.Cols != 1 {
		t.Errorf("expected 1x1, got %dx%d", v.Rows, v.Cols)
	}

	v.Resize(22, 80)
	if v.Rows != 22 || v.Cols != 80 {
		t.Errorf("expected 22x80, got %dx%d", v.Rows, v.Cols)
	}
}
