package app

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/keysync/internal/collab"
	"github.com/dshills/keysync/internal/engine"
	"github.com/dshills/keysync/internal/input/key"
	"github.com/dshills/keysync/internal/renderer/backend"
)

// Status messages.
const (
	msgNoFilename    = "No filename; start with a path to save"
	msgChangedOnDisk = "File changed on disk"
)

// eventLoop renders, waits for one event and handles it, until quit.
func (app *Application) eventLoop(ctx context.Context) error {
	for {
		app.render()

		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}

		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

func (app *Application) render() {
	start := time.Now()
	app.renderer.Render(app.doc.Snapshot())
	app.metrics.RecordRender(time.Since(start))
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.doc.Resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev.Key)
	default:
		// Interrupts only force a redraw.
		return nil
	}
}

// handleKeyEvent applies a key under the document lock, then performs the
// resulting I/O after the lock is released.
func (app *Application) handleKeyEvent(k key.Event) error {
	res := app.doc.HandleKey(k)
	app.metrics.RecordKey(res.Changed)

	if res.Changed {
		app.publish(res.Edit)
	}
	if res.Action == engine.ActionSave {
		app.save()
	}
	if res.Quit {
		return ErrQuit
	}
	return nil
}

// publish queues a local edit for the peer, if one is connected. It never
// waits on the network; a full queue drops the edit and reports it.
func (app *Application) publish(ed engine.Edit) {
	if app.outbox == nil || !app.sink.Connected() {
		return
	}

	p := collab.EncodeEdit(ed)
	select {
	case app.outbox <- p:
	default:
		app.metrics.RecordSend(ErrSendQueueFull)
		app.sendFailed(p, ErrSendQueueFull)
	}
}

// sendLoop writes queued patches in order until the outbox is closed.
func (app *Application) sendLoop(outbox <-chan collab.Patch, done chan<- struct{}) {
	defer close(done)

	for p := range outbox {
		err := app.sink.Send(context.Background(), p)
		app.metrics.RecordSend(err)
		if err == nil {
			continue
		}
		if errors.Is(err, collab.ErrSinkClosed) {
			app.logger.WithComponent("collab").Debug("discarding %s: %v", p, err)
			continue
		}
		app.sendFailed(p, err)
	}
}

// sendFailed reports a lost outbound patch. Editing continues.
func (app *Application) sendFailed(p collab.Patch, err error) {
	err = NewOperationError("send", app.sink.Peer(), err).WithContext(p.String())
	app.logger.WithComponent("collab").Warn("%v", err)
	app.doc.SetStatus("Failed to send change: " + err.Error())
	app.backend.PostInterrupt()
}

// save writes a snapshot of the document outside the lock.
func (app *Application) save() {
	req := app.doc.SaveSnapshot()
	if req.Path == "" {
		app.doc.SetStatus(msgNoFilename)
		return
	}

	if app.watcher != nil {
		app.watcher.Suppress(ownSaveQuiet)
	}

	err := SaveFile(req.Path, req.Text)
	app.metrics.RecordSave(err)
	if err != nil {
		app.logger.Error("%v", err)
		app.doc.SetStatus("Error saving: " + err.Error())
		return
	}

	if !app.doc.MarkSaved(req.Version) {
		app.logger.Debug("document changed while saving %s", req.Path)
	}
	app.doc.SetStatus("Saved to " + req.Path)
	app.logger.Info("saved %s", req.Path)
}

// remoteApplier counts inbound patches on their way to the document.
type remoteApplier struct {
	doc     *Document
	metrics *Metrics
}

func (r remoteApplier) ApplyRemote(ed engine.Edit) error {
	err := r.doc.ApplyRemote(ed)
	r.metrics.RecordRemote(err)
	return err
}
