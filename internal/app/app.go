// Package app provides the main application structure and coordination
// for the keysync editor. It wires the shared document to the terminal,
// the sync endpoint and the file watcher, and runs the input loop.
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/keysync/internal/collab"
	"github.com/dshills/keysync/internal/config"
	"github.com/dshills/keysync/internal/engine"
	"github.com/dshills/keysync/internal/renderer"
	"github.com/dshills/keysync/internal/renderer/backend"
	"github.com/dshills/keysync/internal/watcher"
)

// Application is the central coordinator for all keysync components.
type Application struct {
	mu sync.Mutex

	cfg     *config.Config
	logger  *Logger
	metrics *Metrics

	doc      *Document
	backend  backend.Backend
	renderer *renderer.Renderer

	// Outbound half of the sync channel. It outlives individual
	// connections.
	sink   *collab.Sink
	server *collab.Server

	// Outbound patches wait here so a slow peer never stalls input.
	outbox   chan collab.Patch
	sendDone chan struct{}

	watcher *watcher.FileWatcher
	wg      sync.WaitGroup

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// Path is the file to edit. Empty starts a document without a file.
	Path string

	// Config defaults to config.Default().
	Config *config.Config

	// Logger defaults to NullLogger.
	Logger *Logger

	// Backend is the terminal. Required.
	Backend backend.Backend
}

// New loads the document and prepares every component. Nothing is
// started until Run.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	km, err := cfg.Keymap()
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}
	style, err := cfg.StatusStyle()
	if err != nil {
		return nil, &InitError{Component: "ui", Err: err}
	}

	lines := []string{""}
	var loadErr error
	if opts.Path != "" {
		lines, loadErr = LoadFile(opts.Path)
	}

	doc := NewDocument(opts.Path, lines,
		engine.WithKeymap(km),
		engine.WithHelpText(cfg.UI.HelpText),
	)
	if loadErr != nil {
		logger.Warn("%v", loadErr)
		doc.SetStatus("Error opening: " + loadErr.Error())
	} else {
		doc.SetStatus(km.StartupHint())
	}

	renderOpts := renderer.DefaultOptions()
	renderOpts.StatusStyle = style

	return &Application{
		cfg:      cfg,
		logger:   logger,
		metrics:  NewMetrics(),
		doc:      doc,
		backend:  opts.Backend,
		renderer: renderer.New(opts.Backend, renderOpts),
		sink:     collab.NewSink(collab.DefaultWriteTimeout),
	}, nil
}

// Run initializes the terminal, starts the sync endpoint and the file
// watcher, and runs the input loop until the user quits or ctx is done.
// A normal exit returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	width, height := app.backend.Size()
	app.doc.Resize(width, height)

	app.startServices()
	defer app.stopServices()

	// Wake the blocking poll so the loop notices cancellation.
	stop := context.AfterFunc(ctx, app.backend.PostInterrupt)
	defer stop()

	err := app.eventLoop(ctx)
	app.logger.Info("session: %s", app.metrics.Snapshot())
	return err
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Document returns the shared document.
func (app *Application) Document() *Document {
	return app.doc
}

// Metrics returns the session counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// ServerAddr returns the bound sync address, or "" if the endpoint is not
// running.
func (app *Application) ServerAddr() string {
	app.mu.Lock()
	srv := app.server
	app.mu.Unlock()

	if srv == nil {
		return ""
	}
	return srv.Addr()
}
