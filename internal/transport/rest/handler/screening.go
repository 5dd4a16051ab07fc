package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mindscreen/internal/model"
	"mindscreen/internal/screening"
	"mindscreen/internal/service"
)

// ScreeningHandler handles questionnaire scoring endpoints
type ScreeningHandler struct {
	screeningSvc *service.ScreeningService
}

// NewScreeningHandler creates a new screening handler
func NewScreeningHandler(screeningSvc *service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{screeningSvc: screeningSvc}
}

// Submit handles POST /screening/{instrument}
func (h *ScreeningHandler) Submit(w http.ResponseWriter, r *http.Request) {
	in, ok := screening.Lookup(mux.Vars(r)["instrument"])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown instrument")
		return
	}

	// Any shape problem gets the instrument's own message.
	var req model.ScreeningRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, in.RequiredMessage())
		return
	}
	answers, ok := req.IntAnswers()
	if !ok {
		writeError(w, http.StatusBadRequest, in.RequiredMessage())
		return
	}

	result, err := h.screeningSvc.Submit(r.Context(), in, answers)
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, in.RequiredMessage())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
