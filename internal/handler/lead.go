package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/earthyai/chat-backend/internal/lead"
	"github.com/earthyai/chat-backend/internal/middleware"
	"github.com/earthyai/chat-backend/internal/model"
	"github.com/earthyai/chat-backend/pkg/logger"
)

// LeadHandler handles lead-capture submissions.
type LeadHandler struct {
	service *lead.Service
	logger  *logger.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(svc *lead.Service, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		service: svc,
		logger:  log,
	}
}

// Submit handles POST /api/lead.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		writeJSON(w, http.StatusServiceUnavailable, model.LeadResponse{Success: false})
		return
	}

	var req model.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.LeadResponse{Success: false})
		return
	}

	err := h.service.Forward(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, model.LeadResponse{Success: true})
	case errors.Is(err, lead.ErrValidation):
		writeJSON(w, http.StatusBadRequest, model.LeadResponse{Success: false})
	case errors.Is(err, lead.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, model.LeadResponse{Success: false})
	default:
		h.logger.WithCorrelation(middleware.GetCorrelationID(r.Context())).
			Error("lead submission failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.LeadResponse{Success: false})
	}
}
