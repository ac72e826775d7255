package api

import (
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// RouterConfig holds settings for the API router.
// Passed from main.go so the router can configure CORS, auth, and rate
// limits from env vars.
type RouterConfig struct {
	// BackendAPIKey is the key that must be provided in X-API-Key or Authorization: Bearer <key>.
	// If empty, auth middleware is skipped (development mode).
	BackendAPIKey string

	// CorsAllowedOrigins is a comma-separated list of allowed origins.
	// If empty, defaults to "*" (development mode).
	CorsAllowedOrigins string

	// SynthesizeRateLimit caps synthesis submissions per minute per IP.
	// Zero disables the limiter.
	SynthesizeRateLimit int
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (applied to all routes including /health)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS: restrict origins when configured, otherwise allow all (dev mode)
	allowedOrigins := []string{"*"}
	if cfg.CorsAllowedOrigins != "" {
		origins := strings.Split(cfg.CorsAllowedOrigins, ",")
		trimmed := make([]string, 0, len(origins))
		for _, o := range origins {
			if s := strings.TrimSpace(o); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			allowedOrigins = trimmed
		}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check — public, no auth required
	r.Get("/health", h.Health)

	// API routes — protected by API key auth
	r.Route("/v1", func(r chi.Router) {
		// Apply auth middleware only to /v1 routes
		if cfg.BackendAPIKey != "" {
			r.Use(APIKeyAuth(cfg.BackendAPIKey))
		}

		// Catalog — read-only, loaded once at startup
		r.Get("/catalog", h.GetCatalog)
		r.Get("/catalog/voices", h.ListVoices)

		// Sessions
		r.Post("/sessions", h.CreateSession)
		r.Get("/sessions/{id}", h.GetSession)
		r.Delete("/sessions/{id}", h.DeleteSession)
		r.Put("/sessions/{id}/language", h.SetLanguage)
		r.Put("/sessions/{id}/voice", h.SetVoice)
		r.Put("/sessions/{id}/engine", h.SetEngine)
		r.Get("/sessions/{id}/history", h.GetHistory)

		// Synthesis is the only route that reaches the upstream service,
		// so it carries its own rate limit.
		r.Group(func(r chi.Router) {
			if cfg.SynthesizeRateLimit > 0 {
				r.Use(httprate.LimitByIP(cfg.SynthesizeRateLimit, time.Minute))
			}
			r.Post("/sessions/{id}/synthesize", h.Synthesize)
		})
	})

	return r
}
