package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mentora-backend/internal/handlers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/websocket"
)

func New(
	sessionAuth *middleware.SessionAuth,
	sessionHandler *handlers.SessionHandler,
	featureHandler *handlers.FeatureHandler,
	wsHub *websocket.Hub,
	requestsPerMinute int,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Session creation rate limiter (10 req/min per IP)
	sessionLimiter := middleware.NewRateLimiter(10, time.Minute)
	// Generation rate limiter, per session
	generationLimiter := middleware.NewRateLimiter(requestsPerMinute, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Session Routes ────
		r.With(sessionLimiter.Middleware).Post("/sessions", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Put("/feature", sessionHandler.SwitchFeature)
			})

			// ──── Feature Routes ────
			r.Route("/features", func(r chi.Router) {
				r.Get("/", featureHandler.List)
				r.Get("/{feature}", featureHandler.Render)
				r.Delete("/{feature}/history", featureHandler.ClearHistory)

				r.Group(func(r chi.Router) {
					r.Use(generationLimiter.Middleware)
					r.Post("/{feature}/submit", featureHandler.Submit)
					r.Post("/{feature}/customize", featureHandler.Customize)
				})
			})

			// ──── Upload Routes ────
			r.Get("/uploads/policy", featureHandler.UploadPolicy)
		})

		// ──── WebSocket ────
		// Authenticates via ?token itself; browsers cannot set headers on upgrade.
		r.Get("/ws/tutor", wsHub.HandleTutorStream)
	})

	return r
}
