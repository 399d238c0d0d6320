// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/earthyai/chat-backend/internal/chat"
	"github.com/earthyai/chat-backend/internal/middleware"
	"github.com/earthyai/chat-backend/internal/model"
	"github.com/earthyai/chat-backend/pkg/logger"
)

// ChatHandler handles the conversational endpoint.
type ChatHandler struct {
	service *chat.Service
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *chat.Service, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  log,
	}
}

// Chat handles POST /chat. Every response carries the same shape; error
// responses echo the normalized history unchanged, success appends exactly
// one assistant turn.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{
			Reply:   chat.InvalidInputReply,
			History: []model.Turn{},
		})
		return
	}

	history := chat.NormalizeHistory(req.History)
	if history == nil {
		history = []model.Turn{}
	}

	result, err := h.service.Respond(r.Context(), history, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, model.ChatResponse{
				Reply:   chat.InvalidInputReply,
				History: history,
			})
		case errors.Is(err, chat.ErrProviderUnavailable):
			writeJSON(w, http.StatusBadGateway, model.ChatResponse{
				Reply:   chat.ApologyReply,
				History: history,
			})
		default:
			h.logger.WithCorrelation(middleware.GetCorrelationID(r.Context())).
				Error("chat request failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, model.ChatResponse{
				Reply:   chat.ApologyReply,
				History: history,
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Reply:   result.Reply,
		History: result.History,
	})
}
