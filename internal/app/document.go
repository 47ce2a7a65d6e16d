package app

import (
	"path/filepath"
	"sync"

	"github.com/dshills/keysync/internal/engine"
	"github.com/dshills/keysync/internal/input/key"
	"github.com/dshills/keysync/internal/renderer"
)

// Document is the editor state shared by the input loop and the sync
// endpoint. Every method holds the lock for exactly one operation and
// performs no I/O while holding it.
type Document struct {
	mu  sync.Mutex
	eng *engine.Engine

	// Path and Name never change after creation.
	path string
	name string
}

// NewDocument creates a document for path holding lines. An empty path
// makes a document without a file.
func NewDocument(path string, lines []string, opts ...engine.Option) *Document {
	opts = append([]engine.Option{engine.WithLines(lines)}, opts...)

	var name string
	if path != "" {
		name = filepath.Base(path)
	}

	return &Document{
		eng:  engine.New(opts...),
		path: path,
		name: name,
	}
}

// Path returns the file path, or "" for a document without a file.
func (d *Document) Path() string {
	return d.path
}

// Name returns the display name.
func (d *Document) Name() string {
	return d.name
}

// HandleKey applies one keystroke.
func (d *Document) HandleKey(ev key.Event) engine.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.HandleKey(ev)
}

// ApplyRemote applies an edit received from the peer.
func (d *Document) ApplyRemote(ed engine.Edit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.ApplyRemote(ed)
}

// Resize fits the viewport to a screen of the given size.
func (d *Document) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.eng.Resize(renderer.TextRows(height), width)
}

// SetStatus replaces the status message.
func (d *Document) SetStatus(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.eng.SetStatus(msg)
}

// Snapshot copies what the renderer needs for one frame.
func (d *Document) Snapshot() renderer.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := d.eng.Viewport()
	count := d.eng.LineCount()
	end := min(view.Top+view.Rows, count)

	lines := make([]string, 0, max(end-view.Top, 0))
	for i := view.Top; i < end; i++ {
		lines = append(lines, d.eng.Line(i))
	}

	return renderer.Snapshot{
		Lines:     lines,
		Top:       view.Top,
		Left:      view.Left,
		Cursor:    d.eng.Cursor(),
		LineCount: count,
		Name:      d.name,
		Modified:  d.eng.Modified(),
		Status:    d.eng.Status(),
	}
}

// SaveRequest is the content to write for one save.
type SaveRequest struct {
	Path    string
	Text    string
	Version uint64
}

// SaveSnapshot copies the content to save. The write happens after the
// lock is released; MarkSaved then clears the modified flag only if no
// edit arrived in between.
func (d *Document) SaveSnapshot() SaveRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return SaveRequest{
		Path:    d.path,
		Text:    d.eng.Text(),
		Version: d.eng.Version(),
	}
}

// MarkSaved records a successful write of the given version.
func (d *Document) MarkSaved(version uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.MarkSaved(version)
}

// Text returns the whole document.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.Text()
}

// Modified reports whether there are unsaved changes.
func (d *Document) Modified() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.Modified()
}

// Status returns the status message.
func (d *Document) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.Status()
}

// Cursor returns the cursor position.
func (d *Document) Cursor() engine.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng.Cursor()
}
