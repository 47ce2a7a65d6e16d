// Package buffer provides the line-oriented text buffer that owns document
// content, together with the conversions between flat character offsets
// and line/column points.
//
// The buffer package provides:
//
//   - Lines stored as rune slices, so columns and offsets count characters
//   - Single-character and multi-line insertion
//   - Backspace and forward-delete semantics including line joins
//   - Offset <-> Point conversion that round-trips exactly
//
// Basic usage:
//
//	buf := buffer.NewFromString("Hello World")
//
//	// Split the line after "Hello"
//	buf.InsertLineBreak(buffer.Point{Line: 0, Column: 5})
//	// buf.Lines() == []string{"Hello", " World"}
//
//	// Flat offset 6 is the start of the second line
//	p, ok := buf.OffsetToPoint(6) // (1:0), true
//
// Position Types:
//
//   - Offset: flat character index; one separator counted per line boundary
//   - Point: line and column, both 0-indexed, column in characters
//
// Thread Safety:
//
// Buffer performs no locking. The shared document that owns a buffer
// serializes every read and write.
package buffer
