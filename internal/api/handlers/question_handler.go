package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/davmont/quorum-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// QuestionHandler handles HTTP requests for questions and votes.
type QuestionHandler struct {
	service services.QuestionServiceProvider
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(service services.QuestionServiceProvider) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// AddQuestionPayload is the body for posting a question.
type AddQuestionPayload struct {
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Tags        []string  `json:"tags"`
	AskedBy     string    `json:"askedBy"`
	AskDateTime time.Time `json:"askDateTime"`
}

// VotePayload is the body for upvote/downvote requests.
type VotePayload struct {
	QID      string `json:"qid"`
	Username string `json:"username"`
}

// GetQuestions lists questions, honoring order and search query params.
func (h *QuestionHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")
	if order == "" {
		order = services.OrderNewest
	}
	search := r.URL.Query().Get("search")

	questions, err := h.service.GetQuestions(order, search)
	if err != nil {
		log.Error().Err(err).Str("order", order).Msg("Failed to fetch questions")
		http.Error(w, "Error when fetching questions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(questions)
}

// GetQuestionByID fetches one question and records the viewer's visit.
func (h *QuestionHandler) GetQuestionByID(w http.ResponseWriter, r *http.Request) {
	qid := chi.URLParam(r, "qid")
	viewer := r.URL.Query().Get("username")

	question, err := h.service.GetQuestionByID(qid, viewer)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("qid", qid).Msg("Failed to fetch question")
		http.Error(w, "Error when fetching question by id", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(question)
}

// AddQuestion validates and persists a new question.
func (h *QuestionHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var payload AddQuestionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid question body", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Text == "" || payload.AskedBy == "" || len(payload.Tags) == 0 {
		http.Error(w, "Invalid question body", http.StatusBadRequest)
		return
	}

	question := models.Question{
		Title:       payload.Title,
		Text:        payload.Text,
		AskedBy:     payload.AskedBy,
		AskDateTime: payload.AskDateTime,
	}

	saved, err := h.service.AddQuestion(question, payload.Tags)
	if err != nil {
		log.Error().Err(err).Str("asked_by", payload.AskedBy).Msg("Failed to add question")
		http.Error(w, "Error when adding question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// Upvote casts or cancels an upvote on a question.
func (h *QuestionHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, true)
}

// Downvote casts or cancels a downvote on a question.
func (h *QuestionHandler) Downvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, false)
}

func (h *QuestionHandler) vote(w http.ResponseWriter, r *http.Request, upvote bool) {
	var payload VotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.QID == "" || payload.Username == "" {
		http.Error(w, "Invalid vote body", http.StatusBadRequest)
		return
	}

	result, err := h.service.VoteQuestion(payload.QID, payload.Username, upvote)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("qid", payload.QID).Msg("Failed to register vote")
		http.Error(w, "Error when voting", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
