package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/trendia-ai/trendia/internal/application/services"
)

// HistoryHandler handles search history requests
type HistoryHandler struct {
	history *services.SearchHistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *services.SearchHistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ListHistory handles GET /api/history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	entries, err := h.history.List(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list search history")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetWordFrequencies handles GET /api/history/words
func (h *HistoryHandler) GetWordFrequencies(w http.ResponseWriter, r *http.Request) {
	text, err := h.history.AllPromptsText(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to read search history")
		return
	}

	counts := map[string]int{}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		counts[word]++
	}

	type wordCount struct {
		Word  string `json:"word"`
		Count int    `json:"count"`
	}
	words := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, wordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"words": words,
	})
}

// DeleteEntry handles DELETE /api/history/{id}
func (h *HistoryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "entry ID is required")
		return
	}

	if err := h.history.Delete(r.Context(), id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to delete search entry")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ClearHistory handles DELETE /api/history
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to clear search history")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
