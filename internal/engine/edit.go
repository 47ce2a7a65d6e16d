package engine

import (
	"fmt"

	"github.com/dshills/keysync/internal/engine/buffer"
)

// EditKind distinguishes insertions from deletions.
type EditKind uint8

const (
	// EditInsert inserts Text at At.
	EditInsert EditKind = iota + 1

	// EditDelete removes the single character at At. At the end of a line
	// the "character" is the line boundary and the lines are joined.
	EditDelete
)

// String returns the kind name.
func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is a single mutation expressed against flat character offsets.
//
// For local edits At is the offset where the change happened: the offset
// before an inserted character, or the cursor offset after a deletion.
type Edit struct {
	Kind EditKind
	At   buffer.Offset
	Text string
}

// InsertEdit creates an insertion of text at offset at.
func InsertEdit(at buffer.Offset, text string) Edit {
	return Edit{Kind: EditInsert, At: at, Text: text}
}

// DeleteEdit creates a one-character deletion at offset at.
func DeleteEdit(at buffer.Offset) Edit {
	return Edit{Kind: EditDelete, At: at}
}

// IsZero reports whether e is the zero Edit.
func (e Edit) IsZero() bool {
	return e.Kind == 0
}

// Validate checks that the edit is well formed.
func (e Edit) Validate() error {
	switch {
	case e.Kind != EditInsert && e.Kind != EditDelete:
		return fmt.Errorf("%w: kind %d", ErrInvalidEdit, e.Kind)
	case e.At < 0:
		return fmt.Errorf("%w: negative offset %d", ErrInvalidEdit, e.At)
	case e.Kind == EditInsert && e.Text == "":
		return fmt.Errorf("%w: empty insertion", ErrInvalidEdit)
	}
	return nil
}

// String returns a short description such as `insert "a" at 3`.
func (e Edit) String() string {
	if e.Kind == EditInsert {
		return fmt.Sprintf("insert %q at %d", e.Text, e.At)
	}
	return fmt.Sprintf("%s at %d", e.Kind, e.At)
}
