// Package cursor provides cursor navigation and viewport scrolling.
//
// The cursor package handles:
//
//   - A single cursor as an immutable value over a line/column Point
//   - Arrow, Home/End and page navigation that wraps at line boundaries
//   - Viewport scrolling that keeps the cursor visible
//
// Navigation needs only line counts and line lengths, provided through the
// Lines interface, so any document representation can drive it.
//
// Basic usage:
//
//	c := cursor.New(buffer.Point{Line: 0, Column: 5})
//	c = c.Right(buf) // wraps to (1:0) when (0:5) is end of line
//
//	v := cursor.NewViewport(22, 80)
//	v.Scroll(c.Point()) // adjusts Top/Left, never the cursor
//
// Viewport Rules:
//
// Scroll moves the top row up to the cursor line when the cursor is above
// the window, and down to cursor-rows+1 when it is at or past the bottom.
// Columns follow the same rule with Left and Cols.
package cursor
