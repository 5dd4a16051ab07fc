package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/metrics"
	"mindscreen/internal/model"
)

// Frame types sent to clients
const (
	MsgResponse = "response"
	MsgError    = "error"
)

// Hub tracks open chat sessions
type Hub struct {
	sessions map[string]*Session
	closed   bool

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Session
	unregister chan *Session
	closeAll   chan chan struct{}

	metrics *metrics.Metrics
	logger  log.FieldLogger
}

// Session is one WebSocket chat connection
type Session struct {
	ID   string
	Send chan []byte

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func newSession(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &Session{
		ID:     uuid.NewString(),
		Send:   make(chan []byte, 16),
		ctx:    ctx,
		cancel: cancel,
	}
}

// enqueue queues a frame for the write pump. Frames for a closed session
// or a full buffer are dropped.
func (s *Session) enqueue(frame model.ChatFrame) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.Send <- data:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	close(s.Send)
}

// NewHub creates a new WebSocket hub
func NewHub(m *metrics.Metrics, logger log.FieldLogger) *Hub {
	h := &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		closeAll:   make(chan chan struct{}),
		metrics:    m,
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case s := <-h.register:
			h.mu.Lock()
			if h.closed {
				s.close()
			} else {
				h.sessions[s.ID] = s
				h.metrics.ChatSessions.Inc()
				h.logger.WithField("session_id", s.ID).Debug("chat session opened")
			}
			h.mu.Unlock()

		case s := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.sessions[s.ID]; ok && existing == s {
				delete(h.sessions, s.ID)
				s.close()
				h.metrics.ChatSessions.Dec()
				h.logger.WithField("session_id", s.ID).Debug("chat session closed")
			}
			h.mu.Unlock()

		case done := <-h.closeAll:
			h.mu.Lock()
			for id, s := range h.sessions {
				s.close()
				delete(h.sessions, id)
			}
			h.closed = true
			h.metrics.ChatSessions.Set(0)
			h.mu.Unlock()
			close(done)
		}
	}
}

// Register adds a session
func (h *Hub) Register(s *Session) {
	h.register <- s
}

// Unregister removes a session
func (h *Hub) Unregister(s *Session) {
	h.unregister <- s
}

// CloseAll closes every open session and refuses new ones. It returns once
// all sessions have been told to close.
func (h *Hub) CloseAll() {
	done := make(chan struct{})
	h.closeAll <- done
	<-done
}

// Count returns the number of open sessions
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
