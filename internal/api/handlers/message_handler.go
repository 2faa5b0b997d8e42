package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/davmont/quorum-be/internal/services"
	ws "github.com/davmont/quorum-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles HTTP requests for the global chat feed.
type MessageHandler struct {
	service services.MessageServiceProvider
	hub     *ws.Hub
}

// NewMessageHandler creates a new MessageHandler. The hub is an
// explicit dependency; every successful save is pushed through it.
func NewMessageHandler(service services.MessageServiceProvider, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{service: service, hub: hub}
}

// AddMessagePayload is the body for adding a chat message.
type AddMessagePayload struct {
	MessageToAdd models.Message `json:"messageToAdd"`
}

// AddMessage validates and persists a chat message, then notifies
// connected clients before writing the HTTP response.
func (h *MessageHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var payload AddMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid message body", http.StatusBadRequest)
		return
	}

	msg := payload.MessageToAdd
	if msg.Msg == "" || msg.MsgFrom == "" || msg.MsgDateTime.IsZero() {
		http.Error(w, "Invalid message body", http.StatusBadRequest)
		return
	}

	saved, err := h.service.SaveMessage(msg)
	if err != nil {
		log.Error().Err(err).Str("msg_from", msg.MsgFrom).Msg("Failed to add message")
		http.Error(w, "Error when adding a message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Push before responding so subscribers never trail the HTTP caller.
	h.hub.Broadcast <- ws.NewEvent("messageUpdate", map[string]models.Message{"msg": saved})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// GetMessages returns the whole feed ordered oldest-first. Storage
// failures surface as an empty feed, never as an error status.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages := h.service.GetMessages()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}
