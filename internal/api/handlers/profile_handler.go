package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
)

// ProfileHandler handles profile weight requests
type ProfileHandler struct {
	weights *services.WeightService
	cfg     config.LearningConfig
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(weights *services.WeightService, cfg config.LearningConfig) *ProfileHandler {
	return &ProfileHandler{weights: weights, cfg: cfg}
}

// ListProfiles handles GET /api/profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	known, err := h.weights.KnownProfiles(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": names,
		"count":    len(names),
	})
}

// GetWeights handles GET /api/profiles/{name}/weights
func (h *ProfileHandler) GetWeights(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	// Unknown profiles default-initialize rather than 404 so a brand-new
	// profile shows its starting weights.
	weights := h.weights.Weights(r.Context(), name)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile": name,
		"weights": weights,
	})
}

type setWeightsRequest struct {
	Innovation float64 `json:"w1_innovation"`
	Price      float64 `json:"w2_price"`
}

// SetWeights handles PUT /api/profiles/{name}/weights
func (h *ProfileHandler) SetWeights(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	var payload setWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Innovation <= 0 || payload.Price <= 0 {
		respondWithError(w, http.StatusBadRequest, "weights must be positive")
		return
	}
	if math.Abs(payload.Innovation+payload.Price-1.0) > 0.001 {
		respondWithError(w, http.StatusBadRequest, "weights must sum to 1")
		return
	}

	weights := entities.WeightVector{
		Innovation: payload.Innovation,
		Price:      payload.Price,
	}.Clamp(h.cfg.ClampMin, h.cfg.ClampMax).Renormalize()

	if err := h.weights.SetWeights(r.Context(), name, weights); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to update weights")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile": name,
		"weights": weights,
	})
}
