package handler

import (
	"errors"
	"net/http"

	"mindscreen/internal/model"
	"mindscreen/internal/service"
)

const inferenceUnavailable = "inference service unavailable"

// ChatHandler handles the conversational endpoint
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Chat handles POST /chat_ai
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.chatSvc.Reply(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrMessageRequired) {
			writeError(w, http.StatusBadRequest, "Message is required")
			return
		}
		writeError(w, http.StatusBadGateway, inferenceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{Response: reply})
}
