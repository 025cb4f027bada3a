package routes

import (
	"net/http"

	"github.com/trendia-ai/trendia/internal/api/handlers"
	"github.com/trendia-ai/trendia/internal/api/middleware"
	"github.com/trendia-ai/trendia/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	ideaHandler     *handlers.IdeaHandler
	feedbackHandler *handlers.FeedbackHandler
	profileHandler  *handlers.ProfileHandler
	learningHandler *handlers.LearningHandler
	historyHandler  *handlers.HistoryHandler
	favoriteHandler *handlers.FavoriteHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	ideaHandler *handlers.IdeaHandler,
	feedbackHandler *handlers.FeedbackHandler,
	profileHandler *handlers.ProfileHandler,
	learningHandler *handlers.LearningHandler,
	historyHandler *handlers.HistoryHandler,
	favoriteHandler *handlers.FavoriteHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		ideaHandler:     ideaHandler,
		feedbackHandler: feedbackHandler,
		profileHandler:  profileHandler,
		learningHandler: learningHandler,
		historyHandler:  historyHandler,
		favoriteHandler: favoriteHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Idea endpoints
	r.mux.HandleFunc("POST /api/ideas/generate", r.ideaHandler.GenerateIdeas)
	r.mux.HandleFunc("GET /api/ideas/search", r.ideaHandler.SearchIdeas)

	// Feedback endpoints
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)

	// Profile endpoints
	r.mux.HandleFunc("GET /api/profiles", r.profileHandler.ListProfiles)
	r.mux.HandleFunc("GET /api/profiles/{name}/weights", r.profileHandler.GetWeights)
	r.mux.HandleFunc("PUT /api/profiles/{name}/weights", r.profileHandler.SetWeights)

	// Learning endpoint
	r.mux.HandleFunc("POST /api/learning/run", r.learningHandler.TriggerLearning)

	// Search history endpoints
	r.mux.HandleFunc("GET /api/history", r.historyHandler.ListHistory)
	r.mux.HandleFunc("GET /api/history/words", r.historyHandler.GetWordFrequencies)
	r.mux.HandleFunc("DELETE /api/history/{id}", r.historyHandler.DeleteEntry)
	r.mux.HandleFunc("DELETE /api/history", r.historyHandler.ClearHistory)

	// Favorite endpoints
	r.mux.HandleFunc("GET /api/favorites", r.favoriteHandler.ListFavorites)
	r.mux.HandleFunc("POST /api/favorites", r.favoriteHandler.AddFavorite)
	r.mux.HandleFunc("DELETE /api/favorites", r.favoriteHandler.RemoveFavorite)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
