package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/davmont/quorum-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CommentHandler handles HTTP requests for comments on questions and
// answers.
type CommentHandler struct {
	service services.QuestionServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service services.QuestionServiceProvider) *CommentHandler {
	return &CommentHandler{service: service}
}

// AddCommentPayload is the body for posting a comment. Type selects the
// parent kind: "question" or "answer".
type AddCommentPayload struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Comment models.Comment `json:"comment"`
}

// AddComment validates and persists a comment.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var payload AddCommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid comment body", http.StatusBadRequest)
		return
	}
	if payload.ID == "" || (payload.Type != "question" && payload.Type != "answer") ||
		payload.Comment.Text == "" || payload.Comment.CommentBy == "" {
		http.Error(w, "Invalid comment body", http.StatusBadRequest)
		return
	}

	saved, err := h.service.AddComment(payload.Type, payload.ID, payload.Comment)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) || errors.Is(err, services.ErrAnswerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("parent_id", payload.ID).Str("parent_type", payload.Type).Msg("Failed to add comment")
		http.Error(w, "Error when adding comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}
