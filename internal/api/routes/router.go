package routes

import (
	"net/http"

	"github.com/caretrack/patientflow/backend/internal/api/handlers"
	"github.com/caretrack/patientflow/backend/internal/api/middleware"
	"github.com/caretrack/patientflow/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	queueHandler  *handlers.QueueHandler
	rosterHandler *handlers.RosterHandler
	sseHandler    *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// NewRouter creates a new router
func NewRouter(
	queueHandler *handlers.QueueHandler,
	rosterHandler *handlers.RosterHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		queueHandler:    queueHandler,
		rosterHandler:   rosterHandler,
		sseHandler:      sseHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
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

	// Queue endpoints
	r.mux.HandleFunc("GET /api/queue", r.queueHandler.GetQueue)
	r.mux.HandleFunc("POST /api/queue", r.queueHandler.MutateQueue)
	r.mux.HandleFunc("GET /api/queue/next", r.queueHandler.GetNextPatient)

	// Roster endpoints
	r.mux.HandleFunc("GET /api/doctors", r.rosterHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/rooms", r.rosterHandler.ListRooms)

	// SSE endpoints for real-time queue updates
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/queue", r.sseHandler.StreamQueueUpdates)
		r.mux.HandleFunc("GET /api/stream/queue/doctors/{id}", r.sseHandler.StreamDoctorQueue)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
