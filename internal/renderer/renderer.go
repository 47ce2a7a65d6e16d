package renderer

import (
	"fmt"

	"github.com/dshills/keysync/internal/engine/buffer"
	"github.com/dshills/keysync/internal/renderer/backend"
	"github.com/dshills/keysync/internal/renderer/core"
)

// ReservedRows is the number of screen rows below the text area: the
// status bar and the message line.
const ReservedRows = 2

// NoName is shown in the status bar for a document without a file.
const NoName = "[No Name]"

// Snapshot is a copy of everything needed to draw one frame. It is taken
// under the document lock and rendered after the lock is released.
type Snapshot struct {
	// Lines holds the visible lines, starting at Top.
	Lines []string

	// Top and Left are the first visible line and column.
	Top, Left int

	// Cursor is the cursor position in document coordinates.
	Cursor buffer.Point

	LineCount int
	Name      string
	Modified  bool
	Status    string
}

// Options configures the renderer.
type Options struct {
	// StatusStyle is used for the status bar. It is drawn in reverse video
	// on top of these colors.
	StatusStyle core.Style

	// EmptyLine marks rows past the end of the document.
	EmptyLine rune
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		StatusStyle: core.DefaultStyle(),
		EmptyLine:   '~',
	}
}

// Renderer projects document snapshots onto a backend.
type Renderer struct {
	backend backend.Backend
	opts    Options
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{backend: b, opts: opts}
}

// TextRows returns the number of text rows for a screen height.
func TextRows(height int) int {
	return max(height-ReservedRows, 1)
}

// Render draws one complete frame and flushes it.
func (r *Renderer) Render(s Snapshot) {
	width, height := r.backend.Size()
	rows := TextRows(height)

	r.backend.Clear()

	plain := core.DefaultStyle()
	for y := 0; y < rows && y < height; y++ {
		if y < len(s.Lines) {
			r.drawText(0, y, width, s.Lines[y], s.Left, plain)
		} else {
			r.backend.SetCell(0, y, core.NewStyledCell(r.opts.EmptyLine, plain))
		}
	}

	if rows < height {
		r.drawStatusBar(rows, width, s)
	}
	if rows+1 < height {
		r.drawText(0, rows+1, width, s.Status, 0, plain)
	}

	x, y := r.cursorScreenPos(s)
	if y >= 0 && y < rows && x >= 0 && x < width {
		r.backend.ShowCursor(x, y)
	} else {
		r.backend.HideCursor()
	}

	r.backend.Show()
}

// StatusText formats the status bar: "<name> - N lines", with
// " (modified)" appended for unsaved changes.
func StatusText(s Snapshot) string {
	name := s.Name
	if name == "" {
		name = NoName
	}
	text := fmt.Sprintf("%s - %d lines", name, s.LineCount)
	if s.Modified {
		text += " (modified)"
	}
	return text
}

func (r *Renderer) drawStatusBar(y, width int, s Snapshot) {
	style := r.opts.StatusStyle.Reverse()
	end := r.drawText(0, y, width, StatusText(s), 0, style)
	for x := end; x < width; x++ {
		r.backend.SetCell(x, y, core.NewStyledCell(' ', style))
	}
}

// drawText draws line from character skip onward and returns the first
// unused column. Wide characters that would straddle the right edge are
// not drawn.
func (r *Renderer) drawText(x, y, width int, line string, skip int, style core.Style) int {
	i := 0
	for _, ch := range line {
		if i < skip {
			i++
			continue
		}
		i++

		w := core.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		if w == 2 {
			r.backend.SetCell(x+1, y, core.ContinuationCell())
		}
		x += w
	}
	return x
}

// cursorScreenPos converts the cursor to screen coordinates, counting
// display cells rather than characters.
func (r *Renderer) cursorScreenPos(s Snapshot) (x, y int) {
	y = s.Cursor.Line - s.Top
	if y < 0 || y >= len(s.Lines) {
		return -1, y
	}

	i := 0
	for _, ch := range s.Lines[y] {
		if i >= s.Cursor.Column {
			break
		}
		if i >= s.Left {
			x += core.RuneWidth(ch)
		}
		i++
	}
	return x, y
}
