// Package api exposes a configuration session over HTTP.
//
// REST endpoints read and mutate the parameter groups; every successful
// mutation is also pushed as JSON to all clients connected to the WebSocket
// endpoint. Requests are served one at a time against the session.
package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"go.uber.org/zap"
)

const (
	// clientBuffer is the number of changes queued for a slow WebSocket client
	// before it is disconnected.
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// Server serves one configuration session.
type Server struct {
	// mu serialises every call into the session
	mu      sync.Mutex
	session *config.Session
	log     *logger.Logger
	router  *mux.Router

	httpServer *http.Server
	listener   net.Listener

	upgrader    websocket.Upgrader
	clients     map[*client]struct{}
	clientsMu   sync.RWMutex
	unsubscribe func()
}

type client struct {
	conn *websocket.Conn
	send chan config.Change
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// NewServer creates a server for session and subscribes it to the session's
// changes. The session must not be used elsewhere without going through the server.
func NewServer(session *config.Session, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		mu:      sync.Mutex{},
		session: session,
		log:     log,
		router:  mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		clients:    make(map[*client]struct{}),
		clientsMu:  sync.RWMutex{},
		httpServer: nil,
		listener:   nil,
	}

	s.unsubscribe = session.Subscribe(config.ObserverFunc(s.broadcast))
	s.routes()

	return s
}

func (s *Server) routes() {
	r := s.router.PathPrefix("/api/v1").Subrouter()

	r.HandleFunc("/groups", s.handleListGroups).Methods(http.MethodGet)
	r.HandleFunc("/groups/{group}/state", s.handleGetState).Methods(http.MethodGet)
	r.HandleFunc("/groups/{group}/preset", s.handleSelectPreset).Methods(http.MethodPost)
	r.HandleFunc("/groups/{group}/fields/{key}", s.handleEditField).Methods(http.MethodPut)
	r.HandleFunc("/groups/{group}/reset", s.handleReset).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on address and serves in the background.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", address)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			s.log.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.log.Info("API server started", zap.String("address", s.Address()))

	return nil
}

// Stop closes every WebSocket client and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.unsubscribe()
	s.mu.Unlock()

	s.clientsMu.Lock()
	for c := range s.clients {
		c.close()
		_ = c.conn.Close()
	}
	s.clients = make(map[*client]struct{})
	s.clientsMu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *Server) BaseURL() string {
	return "http://" + s.Address()
}

// WebSocketURL returns the URL of the change stream.
func (s *Server) WebSocketURL() string {
	return "ws://" + s.Address() + "/api/v1/ws"
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// broadcast queues change for every client. It runs inside a session call and
// never blocks: a client whose queue is full is dropped.
func (s *Server) broadcast(change config.Change) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- change:
		default:
			s.log.Warn("dropping slow WebSocket client", zap.String("remote", c.conn.RemoteAddr().String()))
			delete(s.clients, c)
			c.close()
		}
	}
}

func (s *Server) register(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) unregister(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		c.close()
	}
}

// handleWebSocket handles GET /api/v1/ws
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		conn: conn,
		send: make(chan config.Change, clientBuffer),
		once: sync.Once{},
	}
	s.register(c)

	go s.writePump(c)
	s.readPump(c)
}

// readPump discards incoming messages and unregisters the client once the
// connection is gone.
func (s *Server) readPump(c *client) {
	defer s.unregister(c)

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()

	for change := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(change); err != nil {
			s.log.Debug("WebSocket write failed", zap.Error(err))
			return
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}
