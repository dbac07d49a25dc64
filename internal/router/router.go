// Package router sets up all HTTP routes and middleware chains for the
// formpress server. Read endpoints (generated CSS, resolved styles,
// catalog introspection) are public; every mutating endpoint sits behind
// the admin bearer token and a write rate limit.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"formpress/internal/handlers"
	"formpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(forms *handlers.Forms, styles *handlers.Styles, adminTokenHash string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	requireToken := middleware.RequireToken(adminTokenHash)
	writeLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.Route("/forms", func(r chi.Router) {
		// Public read surface, consumed by rendered form pages.
		r.Get("/{id}/css", styles.CSS)
		r.Get("/{id}/styles", styles.Get)
		r.Get("/{id}/styles/summary", styles.Summary)

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Use(writeLimiter.Middleware)

			r.Get("/", forms.List)
			r.Post("/", forms.Create)
			r.Get("/{id}", forms.Get)
			r.Put("/{id}", forms.Update)
			r.Delete("/{id}", forms.Delete)
			r.Post("/{id}/publish", forms.Publish)

			r.Put("/{id}/styles", styles.Update)
			r.Post("/{id}/styles/reset", styles.Reset)
		})
	})

	// Catalog introspection for editor tooling.
	r.Route("/styling", func(r chi.Router) {
		r.Get("/variables", styles.Variables)
		r.Get("/tokens", styles.Tokens)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
