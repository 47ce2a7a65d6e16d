package app

import (
	"context"
	"time"

	"github.com/dshills/keysync/internal/collab"
	"github.com/dshills/keysync/internal/watcher"
)

const (
	shutdownTimeout = 2 * time.Second

	// outboxSize bounds the patches waiting for a slow peer.
	outboxSize = 256

	// ownSaveQuiet is how long watcher events are ignored after our own
	// write.
	ownSaveQuiet = 500 * time.Millisecond
)

// startServices starts the sync endpoint and the file watcher. Neither is
// required for editing, so failures are reported and skipped.
func (app *Application) startServices() {
	if app.cfg.Server.Enabled {
		srv := collab.NewServer(remoteApplier{doc: app.doc, metrics: app.metrics}, app.sink,
			collab.WithAddr(app.cfg.Server.Listen),
			collab.WithPath(app.cfg.Server.Path),
			collab.WithLogger(app.logger.WithComponent("collab")),
			collab.WithNotify(app.backend.PostInterrupt),
			collab.WithAllowedOrigins(app.cfg.Server.AllowedOrigins...),
		)
		if err := srv.Start(); err != nil {
			app.logger.Error("sync server: %v", err)
			app.doc.SetStatus("Sync server unavailable: " + err.Error())
		} else {
			app.mu.Lock()
			app.server = srv
			app.mu.Unlock()
			app.startSender()
		}
	}

	if path := app.doc.Path(); app.cfg.Files.Watch && path != "" {
		w, err := watcher.New(path)
		if err != nil {
			app.logger.Warn("%v", NewOperationError("watch", path, err))
			return
		}
		app.watcher = w
		app.wg.Add(1)
		go app.watchLoop(w)
	}
}

// startSender starts the goroutine that writes local edits to the peer.
func (app *Application) startSender() {
	app.outbox = make(chan collab.Patch, outboxSize)
	app.sendDone = make(chan struct{})
	go app.sendLoop(app.outbox, app.sendDone)
}

// stopSender closes the outbox and waits for queued patches to drain.
func (app *Application) stopSender() {
	if app.outbox == nil {
		return
	}
	close(app.outbox)
	<-app.sendDone
	app.outbox = nil
}

// watchLoop reports external modifications in the status line.
func (app *Application) watchLoop(w *watcher.FileWatcher) {
	defer app.wg.Done()
	log := app.logger.WithComponent("watcher")

	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			log.Info("%s changed on disk (%s)", ev.Path, ev.Op)
			app.doc.SetStatus(msgChangedOnDisk)
			app.backend.PostInterrupt()

		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			log.Warn("%v", err)
		}
	}
}

// stopServices shuts down in reverse start order. There is no handshake
// with the peer beyond the websocket close frame.
func (app *Application) stopServices() {
	var errs ErrorList

	if app.watcher != nil {
		errs.Add(app.watcher.Close())
		app.wg.Wait()
		app.watcher = nil
	}

	app.mu.Lock()
	srv := app.server
	app.server = nil
	app.mu.Unlock()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		errs.Add(srv.Shutdown(ctx))
		cancel()
	}

	// After Shutdown the sink is closed, so draining does not wait on the
	// network.
	app.stopSender()

	if err := errs.AsError(); err != nil {
		app.logger.Warn("shutdown: %v", err)
	}
}
