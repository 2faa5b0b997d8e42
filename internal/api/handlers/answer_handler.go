package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/davmont/quorum-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AnswerHandler handles HTTP requests for answers.
type AnswerHandler struct {
	service services.QuestionServiceProvider
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(service services.QuestionServiceProvider) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// AddAnswerPayload is the body for posting an answer.
type AddAnswerPayload struct {
	QID string        `json:"qid"`
	Ans models.Answer `json:"ans"`
}

// AddAnswer validates and persists an answer on a question.
func (h *AnswerHandler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	var payload AddAnswerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid answer body", http.StatusBadRequest)
		return
	}
	if payload.QID == "" || payload.Ans.Text == "" || payload.Ans.AnsBy == "" {
		http.Error(w, "Invalid answer body", http.StatusBadRequest)
		return
	}

	saved, err := h.service.AddAnswer(payload.QID, payload.Ans)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("qid", payload.QID).Msg("Failed to add answer")
		http.Error(w, "Error when adding answer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}
