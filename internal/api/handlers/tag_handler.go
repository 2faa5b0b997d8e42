package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davmont/quorum-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service services.TagServiceProvider
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service services.TagServiceProvider) *TagHandler {
	return &TagHandler{service: service}
}

// GetTagsWithQuestionNumber lists every tag with its question count.
func (h *TagHandler) GetTagsWithQuestionNumber(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetTagsWithQuestionNumber()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch tag counts")
		http.Error(w, "Error when fetching tags", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

// GetTagByName fetches a single tag by name.
func (h *TagHandler) GetTagByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tag, err := h.service.GetTagByName(name)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("name", name).Msg("Failed to fetch tag")
		http.Error(w, "Error when fetching tag", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tag)
}
