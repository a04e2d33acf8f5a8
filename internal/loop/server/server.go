// Package server tracks the live game sessions of one process. Each session
// runs its own game; the server only knows who is connected and tells them
// when the process is going down.
package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface clients use to announce themselves.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
}

// Server is the session registry.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	drained      chan struct{} // Closed when the last client leaves during shutdown
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	Since    time.Time
	EventsCh chan ClientEvent // Events sent to the client
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates an empty registry. logger may be nil.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// A client joining during shutdown is told so right away.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		Since:    time.Now(),
		EventsCh: make(chan ClientEvent, 4),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	s.logger.Debug("session registered", "id", handle.ID, "user", username, "sessions", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server. Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	delete(s.clients, clientID)
	if s.drained != nil && len(s.clients) == 0 {
		close(s.drained)
		s.drained = nil
	}
	s.logger.Debug("session unregistered", "id", clientID, "user", handle.Username,
		"duration", time.Since(handle.Since).Round(time.Second), "sessions", len(s.clients))
}

// Count returns the number of registered clients.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout. It reports whether every client left in time.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	remaining := len(s.clients)
	if remaining > 0 && s.drained == nil {
		s.drained = make(chan struct{})
	}
	drained := s.drained
	s.mu.Unlock()

	if remaining == 0 {
		return true
	}
	s.logger.Info("notified sessions of shutdown", "sessions", remaining)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-drained:
		return true
	case <-timer.C:
		s.logger.Warn("shutdown timed out", "sessions", s.Count())
		return false
	}
}
