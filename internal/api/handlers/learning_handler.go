package handlers

import (
	"context"
	"net/http"

	"github.com/trendia-ai/trendia/internal/application/services"
)

// LearningRunner defines the learning trigger used by the handler.
type LearningRunner interface {
	Learn(ctx context.Context) (*services.LearningReport, error)
}

// LearningHandler handles learning pass triggers.
type LearningHandler struct {
	service LearningRunner
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(service LearningRunner) *LearningHandler {
	return &LearningHandler{service: service}
}

// TriggerLearning handles POST /api/learning/run
func (h *LearningHandler) TriggerLearning(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Learn(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "learning pass failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "completed",
		"events_processed": report.EventsProcessed,
		"events_skipped":   report.EventsSkipped,
		"ledger_cleared":   report.LedgerCleared,
	})
}
