package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"mindscreen/internal/model"
	"mindscreen/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Handler handles WebSocket chat connections
type Handler struct {
	hub      *Hub
	chatSvc  *service.ChatService
	upgrader websocket.Upgrader
	logger   log.FieldLogger
}

// NewHandler creates a new WebSocket handler. allowedOrigins is the CORS
// origin list; "*" accepts any origin.
func NewHandler(hub *Hub, chatSvc *service.ChatService, allowedOrigins string, logger log.FieldLogger) *Handler {
	return &Handler{
		hub:     hub,
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	if strings.TrimSpace(allowed) == "*" {
		return func(*http.Request) bool { return true }
	}
	origins := make(map[string]bool)
	for _, o := range strings.Split(allowed, ",") {
		origins[strings.TrimSpace(o)] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origins[origin]
	}
}

// Chat handles GET /ws/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := newSession(r.Context())
	h.hub.Register(s)

	go h.writePump(wsConn, s)
	h.readPump(wsConn, s)
}

func (h *Handler) readPump(wsConn *websocket.Conn, s *Session) {
	defer func() {
		h.hub.Unregister(s)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).WithField("session_id", s.ID).Warn("websocket read failed")
			}
			return
		}
		if !s.enqueue(h.reply(s, data)) {
			return
		}
	}
}

func (h *Handler) reply(s *Session, data []byte) model.ChatFrame {
	var req model.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Message == "" {
		return errorFrame("Message is required")
	}

	reply, err := h.chatSvc.Reply(s.ctx, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrMessageRequired) {
			return errorFrame("Message is required")
		}
		return errorFrame("inference service unavailable")
	}
	return model.ChatFrame{Type: MsgResponse, Payload: model.ChatResponse{Response: reply}}
}

func errorFrame(msg string) model.ChatFrame {
	return model.ChatFrame{Type: MsgError, Payload: model.ErrorPayload{Error: msg}}
}

func (h *Handler) writePump(wsConn *websocket.Conn, s *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-s.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
