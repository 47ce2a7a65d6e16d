// Package engine implements the editing core of keysync: a line buffer, a
// cursor and a viewport driven by a key state machine, plus the application
// of edits received from a remote peer.
//
// # Edits
//
// Every mutation is described by an Edit, either an insertion of text at a
// flat character offset or the deletion of the single character at an
// offset. Local keystrokes produce Edits for the outbound sync channel and
// remote Edits are applied with ApplyRemote.
//
// # Thread Safety
//
// Engine is not safe for concurrent use. The shared document in package app
// serializes all access behind one mutex.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello World"))
//	res := e.HandleKey(key.NewRuneEvent('!', key.ModNone))
//	if res.Changed {
//		// forward res.Edit to the peer
//	}
//
//	// Apply an insertion from the peer at offset 0.
//	err := e.ApplyRemote(engine.InsertEdit(0, ">"))
package engine
