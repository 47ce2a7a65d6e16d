package collab

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dshills/keysync/internal/engine"
)

// Default endpoint settings.
const (
	DefaultAddr = "127.0.0.1:3030"
	DefaultPath = "/ws"
)

// ErrServerStarted is returned by Start on a running server.
var ErrServerStarted = errors.New("server already started")

// Applier applies an inbound edit to the shared document.
type Applier interface {
	ApplyRemote(e engine.Edit) error
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithPath sets the websocket path.
func WithPath(path string) ServerOption {
	return func(s *Server) {
		if path != "" {
			s.path = path
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNotify sets a callback run after each applied inbound edit, outside
// any document lock. The editor uses it to request a redraw.
func WithNotify(fn func()) ServerOption {
	return func(s *Server) {
		s.notify = fn
	}
}

// WithAllowedOrigins permits browser origins besides the server's own host.
// Peers that send no Origin header are always accepted.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// Server is the websocket endpoint the peer connects to.
type Server struct {
	addr    string
	path    string
	applier Applier
	sink    *Sink
	logger  Logger
	notify  func()
	origins []string

	upgrader websocket.Upgrader

	mu    sync.Mutex
	http  *http.Server
	ln    net.Listener
	conns map[*websocket.Conn]string
}

// NewServer creates an endpoint that applies inbound patches through
// applier and registers each new connection with sink.
func NewServer(applier Applier, sink *Sink, opts ...ServerOption) *Server {
	s := &Server{
		addr:    DefaultAddr,
		path:    DefaultPath,
		applier: applier,
		sink:    sink,
		logger:  nopLogger{},
		conns:   make(map[*websocket.Conn]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns an http.Handler serving the websocket path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.path, s)
	return mux
}

// Start binds the listen address and serves in the background. Bind
// errors are returned synchronously.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.http != nil {
		return ErrServerStarted
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv := s.http
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve: %v", err)
		}
	}()

	s.logger.Info("listening on ws://%s%s", ln.Addr(), s.path)
	return nil
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Shutdown stops accepting connections and closes every open peer
// connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	// Closing the connections fails any write blocked on a stalled peer.
	for _, c := range conns {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "editor shutting down"),
			time.Now().Add(time.Second))
		_ = c.Close()
	}
	if s.sink != nil {
		s.sink.Close()
	}

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ServeHTTP upgrades the request and runs the receive loop until the peer
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}

	id := uuid.NewString()
	s.track(conn, id)
	defer s.untrack(conn)

	if s.sink != nil {
		if prev := s.sink.Attach(id, conn); prev != nil {
			s.logger.Info("peer %s replaces the previous outbound peer", id)
		}
		defer s.sink.Detach(conn)
	}

	s.logger.Info("peer %s connected from %s", id, r.RemoteAddr)
	s.receive(conn, id)
	s.logger.Info("peer %s disconnected", id)
}

func (s *Server) receive(conn *websocket.Conn, id string) {
	defer conn.Close()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("peer %s read: %v", id, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			s.logger.Debug("peer %s: ignoring non-text frame", id)
			continue
		}
		s.handleFrame(id, data)
	}
}

func (s *Server) handleFrame(id string, data []byte) {
	p, err := DecodePatch(data)
	if err != nil {
		s.logger.Debug("peer %s: %v", id, err)
		return
	}

	if err := s.applier.ApplyRemote(DecodeEdit(p)); err != nil {
		s.logger.Debug("peer %s: dropped %s: %v", id, p, err)
		return
	}
	s.logger.Debug("peer %s: applied %s", id, p)

	if s.notify != nil {
		s.notify()
	}
}

func (s *Server) track(c *websocket.Conn, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = id
}

func (s *Server) untrack(c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

// checkOrigin accepts requests without an Origin header, same-host
// requests and configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.origins, origin) {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
