// Package watcher reports external modifications of the file being edited.
//
// The parent directory is watched rather than the file itself, so that
// editors and tools that save by writing a new file and renaming it over
// the original are still noticed. Events for other files in the directory
// are discarded. Bursts of events are coalesced into one.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher closed")
	ErrNoPath        = errors.New("no path to watch")
)

// Op describes what happened to the file.
type Op uint8

// File operations. Several may be combined in one debounced event.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether o contains op.
func (o Op) Has(op Op) bool {
	return o&op != 0
}

// String returns the operations joined by "|".
func (o Op) String() string {
	var parts []string
	if o.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if o.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if o.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if o.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event is a debounced change to the watched file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Config configures a FileWatcher.
type Config struct {
	// Delay is the quiet period after the last raw event before an Event
	// is delivered.
	Delay time.Duration

	// BufferSize is the capacity of the event and error channels.
	BufferSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Delay:      100 * time.Millisecond,
		BufferSize: 16,
	}
}

// Option configures a FileWatcher.
type Option func(*Config)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		c.Delay = d
	}
}

// WithBufferSize sets the channel capacity.
func WithBufferSize(n int) Option {
	return func(c *Config) {
		c.BufferSize = n
	}
}

// FileWatcher watches a single file.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	config  Config
	path    string

	events chan Event
	errors chan error

	pending    Op
	timer      *time.Timer
	quietUntil time.Time

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. The file itself need not exist yet, but its
// directory must.
func New(path string, opts ...Option) (*FileWatcher, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Delay <= 0 {
		config.Delay = DefaultConfig().Delay
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		config:  config,
		path:    absPath,
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Suppress discards changes observed during the next d. Used around the
// editor's own saves.
func (w *FileWatcher) Suppress(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quietUntil = time.Now().Add(d)
	w.pending = 0
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher and closes its channels.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	w.mu.Lock()
	close(w.events)
	close(w.errors)
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *FileWatcher) handleFSEvent(fsEvent fsnotify.Event) {
	if filepath.Clean(fsEvent.Name) != w.path {
		return
	}
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || time.Now().Before(w.quietUntil) {
		return
	}
	w.pending |= op
	if w.timer == nil {
		w.timer = time.AfterFunc(w.config.Delay, w.flush)
	} else {
		w.timer.Reset(w.config.Delay)
	}
}

// flush delivers the coalesced operations.
func (w *FileWatcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.pending == 0 {
		return
	}
	ev := Event{Path: w.path, Op: w.pending, Timestamp: time.Now()}
	w.pending = 0

	select {
	case w.events <- ev:
	default:
		// Channel full; the consumer already has a pending notification.
	}
}

// convertOp maps fsnotify operations. Chmod alone is not a modification.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
