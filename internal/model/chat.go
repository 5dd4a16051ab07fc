package model

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ChatFrame is the envelope for WebSocket chat messages
type ChatFrame struct {
	Type    string `json:"type"`              // "response", "error"
	Payload any    `json:"payload,omitempty"`
}

// ErrorPayload is the body of every error response
type ErrorPayload struct {
	Error string `json:"error"`
}
