package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEvent serializes an action/payload pair for broadcast.
func NewEvent(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket event")
		return nil
	}
	return b
}

// NewErrorMessage builds an error event for a single client.
func NewErrorMessage(text string) []byte {
	return NewEvent("error", map[string]string{"error": text})
}
