package engine

import (
	"fmt"

	"github.com/dshills/keysync/internal/engine/buffer"
	"github.com/dshills/keysync/internal/engine/cursor"
)

// ApplyRemote applies an edit received from the peer.
//
// The offset is resolved against the current document. An offset that does
// not resolve returns ErrOffsetOutOfRange and leaves everything untouched.
// A deletion removes exactly one character; at the end of a line it joins
// the next line, and at the end of the document it removes nothing. Any
// resolved edit marks the document modified.
//
// The local cursor keeps its place in the text: an edit strictly before the
// cursor shifts it, anything at or after it does not.
func (e *Engine) ApplyRemote(ed Edit) error {
	if err := ed.Validate(); err != nil {
		return err
	}

	p, ok := e.buf.OffsetToPoint(ed.At)
	if !ok {
		return fmt.Errorf("%w: %d (document length %d)", ErrOffsetOutOfRange, ed.At, e.buf.TotalLength())
	}

	curOff := e.CursorOffset()
	delta := 0

	switch ed.Kind {
	case EditDelete:
		if e.buf.DeleteAt(p) {
			delta = -1
		}
	case EditInsert:
		end := e.buf.InsertText(p, ed.Text)
		delta = e.buf.PointToOffset(end) - ed.At
	}

	if ed.At < curOff {
		curOff += delta
	}
	e.cur = e.cursorAt(curOff)

	e.touch()
	e.status = "Applied change: " + ed.String()
	e.view.Scroll(e.cur.Point())
	return nil
}

// cursorAt converts an offset to a cursor, clamping into the document.
func (e *Engine) cursorAt(o buffer.Offset) cursor.Cursor {
	p, ok := e.buf.OffsetToPoint(max(o, 0))
	if !ok {
		p = Point{Line: e.buf.LineCount(), Column: o}
	}
	return cursor.New(p).Clamp(e.buf)
}
