package buffer

import "fmt"

// Offset is a flat character index into the whole document. Each line
// boundary counts as one character. Offsets are what the sync protocol
// puts on the wire.
type Offset = int

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in characters from the start of the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// OffsetToPoint converts a flat offset to a line/column point.
// It returns false if the offset lies outside [0, TotalLength()].
func (b *Buffer) OffsetToPoint(o Offset) (Point, bool) {
	if o < 0 {
		return Point{}, false
	}
	for i, l := range b.lines {
		if o <= len(l) {
			return Point{Line: i, Column: o}, true
		}
		o -= len(l) + 1
	}
	return Point{}, false
}

// PointToOffset converts a point to a flat offset. The point must be
// inside the buffer.
func (b *Buffer) PointToOffset(p Point) Offset {
	o := 0
	for i := 0; i < p.Line && i < len(b.lines); i++ {
		o += len(b.lines[i]) + 1
	}
	return o + p.Column
}
