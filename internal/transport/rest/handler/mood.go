package handler

import (
	"errors"
	"net/http"

	"mindscreen/internal/model"
	"mindscreen/internal/service"
)

// MoodHandler handles sentiment prediction
type MoodHandler struct {
	moodSvc *service.MoodService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodSvc *service.MoodService) *MoodHandler {
	return &MoodHandler{moodSvc: moodSvc}
}

// Predict handles POST /predict_mood
func (h *MoodHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req model.MoodRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.moodSvc.Analyze(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			writeError(w, http.StatusBadRequest, "Text is required")
			return
		}
		writeError(w, http.StatusBadGateway, inferenceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
