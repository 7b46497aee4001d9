package handlers

import (
	"encoding/json"
	"net/http"

	"chatgate-backend/internal/models"
	"chatgate-backend/internal/services"
)

type ChatHandler struct {
	relayService *services.RelayService
}

func NewChatHandler(relayService *services.RelayService) *ChatHandler {
	return &ChatHandler{relayService: relayService}
}

// Relay answers the latest user message in the posted conversation. The
// guard has already attached the principal by the time this runs.
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	text, err := h.relayService.Answer(r.Context(), req.Messages)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Text: text})
}
