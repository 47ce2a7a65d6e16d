package cursor

import (
	"fmt"

	"github.com/dshills/keysync/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Lines is the read-only view of a document that navigation needs.
type Lines interface {
	LineCount() int
	LineLen(line int) int
}

// Cursor represents an insertion point in the document.
// Cursor is an immutable value type.
type Cursor struct {
	pos Point
}

// New creates a cursor at the given point.
func New(p Point) Cursor {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Column < 0 {
		p.Column = 0
	}
	return Cursor{pos: p}
}

// Point returns the cursor's position.
func (c Cursor) Point() Point {
	return c.pos
}

// Line returns the cursor's line.
func (c Cursor) Line() int {
	return c.pos.Line
}

// Column returns the cursor's column.
func (c Cursor) Column() int {
	return c.pos.Column
}

// Clamp returns a cursor pulled back inside the document.
func (c Cursor) Clamp(l Lines) Cursor {
	p := c.pos
	if last := l.LineCount() - 1; p.Line > last {
		p.Line = max(last, 0)
	}
	p.Column = min(p.Column, l.LineLen(p.Line))
	return New(p)
}

// Up moves one line up, clamping the column to the target line length.
// It is a no-op on the first line.
func (c Cursor) Up(l Lines) Cursor {
	if c.pos.Line == 0 {
		return c
	}
	line := c.pos.Line - 1
	return Cursor{pos: Point{Line: line, Column: min(c.pos.Column, l.LineLen(line))}}
}

// Down moves one line down, clamping the column to the target line length.
// It is a no-op on the last line.
func (c Cursor) Down(l Lines) Cursor {
	if c.pos.Line >= l.LineCount()-1 {
		return c
	}
	line := c.pos.Line + 1
	return Cursor{pos: Point{Line: line, Column: min(c.pos.Column, l.LineLen(line))}}
}

// Left moves one character left, wrapping to the end of the previous line
// at column 0.
func (c Cursor) Left(l Lines) Cursor {
	switch {
	case c.pos.Column > 0:
		return Cursor{pos: Point{Line: c.pos.Line, Column: c.pos.Column - 1}}
	case c.pos.Line > 0:
		line := c.pos.Line - 1
		return Cursor{pos: Point{Line: line, Column: l.LineLen(line)}}
	default:
		return c
	}
}

// Right moves one character right, wrapping to column 0 of the next line
// at the end of a line.
func (c Cursor) Right(l Lines) Cursor {
	switch {
	case c.pos.Column < l.LineLen(c.pos.Line):
		return Cursor{pos: Point{Line: c.pos.Line, Column: c.pos.Column + 1}}
	case c.pos.Line < l.LineCount()-1:
		return Cursor{pos: Point{Line: c.pos.Line + 1}}
	default:
		return c
	}
}

// Home moves to column 0.
func (c Cursor) Home() Cursor {
	return Cursor{pos: Point{Line: c.pos.Line}}
}

// End moves to the end of the current line.
func (c Cursor) End(l Lines) Cursor {
	return Cursor{pos: Point{Line: c.pos.Line, Column: l.LineLen(c.pos.Line)}}
}

// PageUp moves up by rows lines, stopping at the first line.
func (c Cursor) PageUp(l Lines, rows int) Cursor {
	for i := 0; i < max(rows, 1) && c.pos.Line > 0; i++ {
		c = c.Up(l)
	}
	return c
}

// PageDown moves down by rows lines, stopping at the last line.
func (c Cursor) PageDown(l Lines, rows int) Cursor {
	for i := 0; i < max(rows, 1) && c.pos.Line < l.LineCount()-1; i++ {
		c = c.Down(l)
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor%s", c.pos)
}
