package collab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a single outbound frame write.
const DefaultWriteTimeout = 5 * time.Second

// ErrSinkClosed is returned by Send after Close.
var ErrSinkClosed = errors.New("sink closed")

// Conn is the write side of a peer connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Sink forwards local edits to the connected peer. It has its own locks,
// separate from the document lock. mu guards the peer state and is never
// held across a network write, so Connected and Peer do not wait on a
// slow peer. writeMu serializes frames.
type Sink struct {
	mu           sync.Mutex
	conn         Conn
	peer         string
	closed       bool
	writeTimeout time.Duration

	writeMu sync.Mutex
}

// NewSink creates a sink with no peer attached.
func NewSink(writeTimeout time.Duration) *Sink {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &Sink{writeTimeout: writeTimeout}
}

// Attach makes conn the outbound peer and returns the connection it
// replaced, if any.
func (s *Sink) Attach(peer string, conn Conn) Conn {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.conn
	s.conn = conn
	s.peer = peer
	return prev
}

// Detach removes conn if it is still the current peer.
func (s *Sink) Detach(conn Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != conn {
		return false
	}
	s.conn = nil
	s.peer = ""
	return true
}

// Peer returns the id of the attached peer, or "" if none.
func (s *Sink) Peer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peer
}

// Connected reports whether a peer is attached.
func (s *Sink) Connected() bool {
	return s.Peer() != ""
}

// Send writes p to the peer as one text frame. With no peer attached it
// does nothing and returns nil.
func (s *Sink) Send(ctx context.Context, p Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := p.MarshalJSON()
	if err != nil {
		return err
	}

	s.mu.Lock()
	conn, peer, closed := s.conn, s.peer, s.closed
	s.mu.Unlock()

	if closed {
		return ErrSinkClosed
	}
	if conn == nil {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline := time.Now().Add(s.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("send to %s: %w", peer, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send to %s: %w", peer, err)
	}
	return nil
}

// Close detaches the peer and rejects further sends. The connection itself
// is owned by the server and is not closed here.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.conn = nil
	s.peer = ""
}
