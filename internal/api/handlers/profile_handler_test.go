package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendia-ai/trendia/internal/api/handlers"
	"github.com/trendia-ai/trendia/internal/application/services"
	"github.com/trendia-ai/trendia/internal/domain/entities"
	"github.com/trendia-ai/trendia/pkg/config"
	apperrors "github.com/trendia-ai/trendia/pkg/errors"
)

type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entities.Profile
}

func newMemoryProfileRepo(profiles ...*entities.Profile) *memoryProfileRepo {
	repo := &memoryProfileRepo{profiles: make(map[string]*entities.Profile)}
	for _, p := range profiles {
		repo.profiles[p.Name] = p
	}
	return repo
}

func (r *memoryProfileRepo) Get(ctx context.Context, name string) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	return profile, nil
}

func (r *memoryProfileRepo) Set(ctx context.Context, profile *entities.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Name] = profile
	return nil
}

func (r *memoryProfileRepo) Names(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names, nil
}

func learningTestConfig() config.LearningConfig {
	return config.LearningConfig{
		LearningRate: 0.05,
		ClampMin:     0.01,
		ClampMax:     0.99,
		ClearLedger:  true,
	}
}

func newProfileHandler(repo *memoryProfileRepo) *handlers.ProfileHandler {
	return handlers.NewProfileHandler(services.NewWeightService(repo), learningTestConfig())
}

func TestProfileHandler_ListProfiles(t *testing.T) {
	repo := newMemoryProfileRepo(
		&entities.Profile{Name: "jovem", Weights: entities.WeightVector{Innovation: 0.7, Price: 0.3}},
		&entities.Profile{Name: "geral", Weights: entities.DefaultWeights()},
	)
	handler := newProfileHandler(repo)

	req := httptest.NewRequest("GET", "/api/profiles", nil)
	w := httptest.NewRecorder()
	handler.ListProfiles(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Profiles []string `json:"profiles"`
		Count    int      `json:"count"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []string{"geral", "jovem"}, response.Profiles)
	assert.Equal(t, 2, response.Count)
}

func TestProfileHandler_GetWeights_UnknownProfileDefaults(t *testing.T) {
	handler := newProfileHandler(newMemoryProfileRepo())

	req := httptest.NewRequest("GET", "/api/profiles/novo/weights", nil)
	req.SetPathValue("name", "novo")
	w := httptest.NewRecorder()
	handler.GetWeights(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Profile string                `json:"profile"`
		Weights entities.WeightVector `json:"weights"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "novo", response.Profile)
	assert.InDelta(t, 0.5, response.Weights.Innovation, 1e-9)
	assert.InDelta(t, 0.5, response.Weights.Price, 1e-9)
}

func TestProfileHandler_SetWeights_Persists(t *testing.T) {
	repo := newMemoryProfileRepo()
	handler := newProfileHandler(repo)

	body := `{"w1_innovation":0.7,"w2_price":0.3}`
	req := httptest.NewRequest("PUT", "/api/profiles/jovem/weights", strings.NewReader(body))
	req.SetPathValue("name", "jovem")
	w := httptest.NewRecorder()
	handler.SetWeights(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.Get(context.Background(), "jovem")
	assert.NoError(t, err)
	assert.InDelta(t, 0.7, stored.Weights.Innovation, 1e-9)
	assert.InDelta(t, 0.3, stored.Weights.Price, 1e-9)
}

func TestProfileHandler_SetWeights_Rejected(t *testing.T) {
	repo := newMemoryProfileRepo()
	handler := newProfileHandler(repo)

	for name, body := range map[string]string{
		"negative weight": `{"w1_innovation":-0.2,"w2_price":1.2}`,
		"zero weight":     `{"w1_innovation":0,"w2_price":1}`,
		"sum not one":     `{"w1_innovation":0.7,"w2_price":0.7}`,
		"invalid payload": `{`,
	} {
		req := httptest.NewRequest("PUT", "/api/profiles/jovem/weights", strings.NewReader(body))
		req.SetPathValue("name", "jovem")
		w := httptest.NewRecorder()
		handler.SetWeights(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	names, _ := repo.Names(context.Background())
	assert.Empty(t, names)
}

func TestProfileHandler_SetWeights_ClampsExtremes(t *testing.T) {
	repo := newMemoryProfileRepo()
	handler := newProfileHandler(repo)

	// 0.999/0.001 passes the sum check but lands outside the clamp range,
	// so the stored vector is pulled back and renormalized.
	body := `{"w1_innovation":0.999,"w2_price":0.001}`
	req := httptest.NewRequest("PUT", "/api/profiles/jovem/weights", strings.NewReader(body))
	req.SetPathValue("name", "jovem")
	w := httptest.NewRecorder()
	handler.SetWeights(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.Get(context.Background(), "jovem")
	assert.NoError(t, err)
	assert.InDelta(t, 0.99, stored.Weights.Innovation, 1e-9)
	assert.InDelta(t, 0.01, stored.Weights.Price, 1e-9)
}
