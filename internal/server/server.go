package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
	"github.com/zeusync/physics2d/pkg/generic"
)

const (
	FrameSnapshot     = "snapshot"
	FrameContactBegin = "contact.begin"
	FrameContactEnd   = "contact.end"
)

// Frame is the JSON message pushed to every websocket client.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SnapshotSource provides the world state streamed to clients.
type SnapshotSource interface {
	Snapshot() physics.Snapshot
}

// Stats contains server statistics
type Stats struct {
	Clients int    `json:"clients"`
	Frames  uint64 `json:"frames"`
	Dropped uint64 `json:"dropped"`
	Running bool   `json:"running"`
}

// Server streams world snapshots and contact events over websockets.
//
//	/ws        websocket stream of Frame messages
//	/snapshot  current snapshot as JSON
//	/healthz   Stats as JSON
type Server struct {
	config   Config
	logger   log.Log
	hub      *hub
	upgrader websocket.Upgrader
	buffers  *generic.Pool[*bytes.Buffer]

	mu       sync.RWMutex
	source   SnapshotSource
	subs     []bus.Subscription
	http     *http.Server
	listener net.Listener

	frames  atomic.Uint64
	dropped atomic.Uint64
	running atomic.Bool
	closed  atomic.Bool
}

func New(config Config, logger log.Log) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}

	s := &Server{
		config: config,
		logger: logger.With(log.String("component", "server")),
		hub:    newHub(config.MaxClients),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		buffers: generic.NewHotPool(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			(*bytes.Buffer).Reset,
			4,
		),
	}

	s.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("max_clients", config.MaxClients))

	return s, nil
}

// SetSource swaps the world being streamed.
func (s *Server) SetSource(src SnapshotSource) {
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

func (s *Server) snapshot() (physics.Snapshot, bool) {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()
	if src == nil {
		return physics.Snapshot{}, false
	}
	return src.Snapshot(), true
}

// Attach forwards step and contact events of b to the connected clients.
// Subscriptions from an earlier Attach are cancelled.
func (s *Server) Attach(b bus.EventBus) error {
	handlers := map[string]bus.EventHandler{
		physics.EventStep: func(bus.Event) error {
			snap, ok := s.snapshot()
			if !ok {
				return nil
			}
			return s.Broadcast(FrameSnapshot, snap)
		},
		physics.EventContactBegin: func(e bus.Event) error {
			return s.Broadcast(FrameContactBegin, e.Data())
		},
		physics.EventContactEnd: func(e bus.Event) error {
			return s.Broadcast(FrameContactEnd, e.Data())
		},
	}

	subs := make([]bus.Subscription, 0, len(handlers))
	for _, typ := range []string{physics.EventContactBegin, physics.EventContactEnd, physics.EventStep} {
		sub, err := b.Subscribe(typ, handlers[typ])
		if err != nil {
			for _, sub := range subs {
				_ = sub.Cancel()
			}
			return err
		}
		subs = append(subs, sub)
	}

	s.mu.Lock()
	old := s.subs
	s.subs = subs
	s.mu.Unlock()

	for _, sub := range old {
		_ = sub.Cancel()
	}
	return nil
}

func (s *Server) encode(typ string, data any) ([]byte, error) {
	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(Frame{Type: typ, Data: data}); err != nil {
		return nil, err
	}
	return bytes.Clone(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Broadcast encodes a frame once and queues it on every client. Clients that
// cannot keep up are disconnected.
func (s *Server) Broadcast(typ string, data any) error {
	frame, err := s.encode(typ, data)
	if err != nil {
		return err
	}
	s.frames.Add(1)

	for _, id := range s.hub.broadcast(frame) {
		s.dropped.Add(1)
		s.logger.Warn("Dropping slow client", log.String("client_id", id))
		s.hub.remove(id)
	}
	return nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub.full() {
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", log.Error(err))
		return
	}

	c := newClient(conn, s.config.SendBuffer)
	if snap, ok := s.snapshot(); ok {
		if frame, err := s.encode(FrameSnapshot, snap); err == nil {
			c.enqueue(frame)
		}
	}
	if err := s.hub.add(c); err != nil {
		s.logger.Warn("Rejecting client", log.Error(err))
		c.close()
		return
	}

	clientLogger := s.logger.With(log.String("client_id", c.id))
	clientLogger.Info("Client connected",
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int("total_clients", s.hub.len()))

	go func() {
		if err := c.readLoop(); err != nil {
			clientLogger.Debug("Client reader stopped", log.Error(err))
		}
		s.hub.remove(c.id)
	}()

	if err := c.writeLoop(s.config.WriteTimeout, s.config.PingInterval); err != nil {
		clientLogger.Debug("Client writer stopped", log.Error(err))
	}
	s.hub.remove(c.id)
	clientLogger.Info("Client disconnected", log.Int("total_clients", s.hub.len()))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot()
	if !ok {
		http.Error(w, ErrNoSource.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Stats())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Start listens on Config.ListenAddr and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.running.Store(false)
		s.logger.Error("Failed to create listener", log.Error(err))
		return err
	}

	srv := &http.Server{Handler: s.Handler()}
	s.mu.Lock()
	s.http = srv
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP server down and disconnects every client.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	s.mu.Lock()
	srv := s.http
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Cancel()
	}
	s.hub.closeAll()
	err := srv.Shutdown(ctx)

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if needed; a closed server cannot be restarted.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.running.Load() {
		return s.Stop(context.Background())
	}
	return nil
}

func (s *Server) Stats() Stats {
	return Stats{
		Clients: s.hub.len(),
		Frames:  s.frames.Load(),
		Dropped: s.dropped.Load(),
		Running: s.running.Load(),
	}
}
