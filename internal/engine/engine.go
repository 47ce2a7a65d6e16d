package engine

import (
	"fmt"

	"github.com/dshills/keysync/internal/engine/buffer"
	"github.com/dshills/keysync/internal/engine/cursor"
	"github.com/dshills/keysync/internal/input/key"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// Offset is a flat character index into the document.
	Offset = buffer.Offset
)

// Action is a side effect the caller must perform after HandleKey returns,
// outside any lock held around the engine.
type Action uint8

const (
	// ActionNone requests nothing.
	ActionNone Action = iota

	// ActionSave requests that the document be written to its file.
	ActionSave
)

// Result describes the outcome of one keystroke.
type Result struct {
	// Changed is true when the document content was mutated. Edit then
	// describes the mutation.
	Changed bool
	Edit    Edit

	// Quit is true when the user asked to exit and no warning was due.
	Quit bool

	Action Action
}

// Engine is the editing core: document content, cursor, viewport and the
// editor state that keystrokes and remote edits act on.
type Engine struct {
	buf    *buffer.Buffer
	cur    cursor.Cursor
	view   cursor.Viewport
	keymap Keymap

	helpText string
	status   string
	modified bool
	version  uint64
}

// New creates an engine. Without options it holds the empty document.
func New(opts ...Option) *Engine {
	e := &Engine{
		buf:    buffer.New(),
		view:   cursor.NewViewport(cursor.DefaultRows, cursor.DefaultCols),
		keymap: DefaultKeymap(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.helpText == "" {
		e.helpText = e.keymap.HelpText()
	}
	return e
}

// Read Operations

// Text returns the document as flat text with "\n" between lines.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Lines returns a copy of all lines.
func (e *Engine) Lines() []string {
	return e.buf.Lines()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// Line returns line i, or "" if out of range.
func (e *Engine) Line(i int) string {
	return e.buf.Line(i)
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() Point {
	return e.cur.Point()
}

// CursorOffset returns the cursor position as a flat offset.
func (e *Engine) CursorOffset() Offset {
	return e.buf.PointToOffset(e.cur.Point())
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() cursor.Viewport {
	return e.view
}

// Keymap returns the command bindings.
func (e *Engine) Keymap() Keymap {
	return e.keymap
}

// Modified reports whether the document has unsaved changes.
func (e *Engine) Modified() bool {
	return e.modified
}

// Version returns the mutation counter. It increases on every change to
// the document content and never decreases.
func (e *Engine) Version() uint64 {
	return e.version
}

// Status returns the status message.
func (e *Engine) Status() string {
	return e.status
}

// State Operations

// SetStatus replaces the status message.
func (e *Engine) SetStatus(msg string) {
	e.status = msg
}

// MarkSaved clears the modified flag if no mutation happened since the
// given version was observed. It reports whether the flag was cleared.
func (e *Engine) MarkSaved(version uint64) bool {
	if version != e.version {
		return false
	}
	e.modified = false
	return true
}

// Resize sets the visible text area and re-scrolls to the cursor.
func (e *Engine) Resize(rows, cols int) {
	e.view.Resize(rows, cols)
	e.view.Scroll(e.cur.Point())
}

// SetCursor moves the cursor, clamped into the document.
func (e *Engine) SetCursor(p Point) {
	e.cur = cursor.New(p).Clamp(e.buf)
	e.view.Scroll(e.cur.Point())
}

// touch records a content mutation.
func (e *Engine) touch() {
	e.modified = true
	e.version++
}

// Key Handling

// HandleKey applies one keystroke and reports what happened. The viewport
// is re-scrolled to keep the cursor visible after every key.
func (e *Engine) HandleKey(ev key.Event) Result {
	res := e.handleKey(ev)
	if res.Changed {
		e.touch()
		e.status = ""
	}
	e.view.Scroll(e.cur.Point())
	return res
}

func (e *Engine) handleKey(ev key.Event) Result {
	switch {
	case ev.Matches(e.keymap.Quit):
		if e.modified {
			e.status = e.keymap.UnsavedWarning()
			// The next quit exits.
			e.modified = false
			return Result{}
		}
		return Result{Quit: true}
	case ev.Matches(e.keymap.Save):
		return Result{Action: ActionSave}
	case ev.Matches(e.keymap.Help):
		e.status = e.helpText
		return Result{}
	case ev.IsChar():
		return e.insertChar(ev.Rune)
	case ev.IsCtrl():
		e.status = fmt.Sprintf("Pressed %s (code: %d)", ev, ev.CtrlCode())
		return Result{}
	}

	switch ev.Key {
	case key.KeyEnter:
		return e.insertLineBreak()
	case key.KeyBackspace:
		return e.deleteBackward()
	case key.KeyDelete:
		return e.deleteForward()
	}

	if ev.Key.IsNavigation() {
		e.cur = e.navigate(ev.Key)
	}
	return Result{}
}

// navigate returns the cursor after a navigation key.
func (e *Engine) navigate(k key.Key) cursor.Cursor {
	switch k {
	case key.KeyUp:
		return e.cur.Up(e.buf)
	case key.KeyDown:
		return e.cur.Down(e.buf)
	case key.KeyLeft:
		return e.cur.Left(e.buf)
	case key.KeyRight:
		return e.cur.Right(e.buf)
	case key.KeyHome:
		return e.cur.Home()
	case key.KeyEnd:
		return e.cur.End(e.buf)
	case key.KeyPageUp:
		return e.cur.PageUp(e.buf, e.view.Rows)
	case key.KeyPageDown:
		return e.cur.PageDown(e.buf, e.view.Rows)
	}
	return e.cur
}

func (e *Engine) insertChar(r rune) Result {
	p := e.cur.Point()
	at := e.buf.PointToOffset(p)
	e.buf.Insert(p, r)
	e.cur = cursor.New(Point{Line: p.Line, Column: p.Column + 1})
	return Result{Changed: true, Edit: InsertEdit(at, string(r))}
}

func (e *Engine) insertLineBreak() Result {
	p := e.cur.Point()
	at := e.buf.PointToOffset(p)
	e.buf.InsertLineBreak(p)
	e.cur = cursor.New(Point{Line: p.Line + 1})
	return Result{Changed: true, Edit: InsertEdit(at, "\n")}
}

func (e *Engine) deleteBackward() Result {
	p, ok := e.buf.DeleteBefore(e.cur.Point())
	if !ok {
		return Result{}
	}
	e.cur = cursor.New(p)
	return Result{Changed: true, Edit: DeleteEdit(e.buf.PointToOffset(p))}
}

func (e *Engine) deleteForward() Result {
	p := e.cur.Point()
	if !e.buf.DeleteAt(p) {
		return Result{}
	}
	return Result{Changed: true, Edit: DeleteEdit(e.buf.PointToOffset(p))}
}
