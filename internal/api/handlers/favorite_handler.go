package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/trendia-ai/trendia/internal/application/services"
)

// FavoriteHandler handles per-user favorite requests
type FavoriteHandler struct {
	favorites *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type favoriteRequest struct {
	Username   string `json:"username"`
	ProductURL string `json:"product_url"`
}

func (p *favoriteRequest) valid() bool {
	p.Username = strings.TrimSpace(p.Username)
	p.ProductURL = strings.TrimSpace(p.ProductURL)
	return p.Username != "" && p.ProductURL != ""
}

// AddFavorite handles POST /api/favorites
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var payload favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !payload.valid() {
		respondWithError(w, http.StatusBadRequest, "username and product_url are required")
		return
	}

	if err := h.favorites.Add(r.Context(), payload.Username, payload.ProductURL); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// RemoveFavorite handles DELETE /api/favorites
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	payload := favoriteRequest{
		Username:   r.URL.Query().Get("username"),
		ProductURL: r.URL.Query().Get("product_url"),
	}
	if !payload.valid() {
		respondWithError(w, http.StatusBadRequest, "username and product_url are required")
		return
	}

	if err := h.favorites.Remove(r.Context(), payload.Username, payload.ProductURL); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	products, err := h.favorites.List(r.Context(), username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}
