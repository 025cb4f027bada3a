package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/trendia-ai/trendia/internal/application/services"
)

// IdeaHandler handles idea generation and catalog search requests
type IdeaHandler struct {
	discovery *services.DiscoveryService
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(discovery *services.DiscoveryService) *IdeaHandler {
	return &IdeaHandler{discovery: discovery}
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	Profile string `json:"profile"`
}

// GenerateIdeas handles POST /api/ideas/generate
func (h *IdeaHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Prompt = strings.TrimSpace(payload.Prompt)
	payload.Profile = strings.TrimSpace(payload.Profile)

	if payload.Prompt == "" {
		respondWithError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if len(payload.Prompt) > 500 {
		respondWithError(w, http.StatusBadRequest, "prompt is too long")
		return
	}
	if payload.Profile == "" {
		payload.Profile = "geral"
	}

	products := h.discovery.GenerateAndRank(r.Context(), payload.Prompt, payload.Profile)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// SearchIdeas handles GET /api/ideas/search
func (h *IdeaHandler) SearchIdeas(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	profile := strings.TrimSpace(r.URL.Query().Get("profile"))
	if profile == "" {
		profile = "geral"
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	products := h.discovery.FindAndRank(r.Context(), query, profile, limit)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
