// Package router sets up all HTTP routes and middleware chains for the
// BrandForge studio. Actions that call AI providers sit behind a rate
// limiter; everything else runs on the global stack only.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandforge/internal/handlers"
	"brandforge/internal/middleware"
	"brandforge/internal/session"
	"brandforge/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting
// (used in tests).
func New(sessionStore *session.Store, studio *handlers.Studio, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware. Applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Static assets need no session.
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))

		r.Get("/", studio.Home)
		r.Get("/health", studio.Health)
		r.Get("/media/{id}", studio.ServeMedia)

		// Cheap state changes, no AI round trip.
		r.Post("/assets/{id}", studio.EditAsset)
		r.Post("/assets/{id}/schedule", studio.Schedule)
		r.Post("/tone", studio.SetTone)
		r.Post("/channel", studio.SetChannel)
		r.Post("/back", studio.Back)
		r.Post("/reset", studio.Reset)

		// Generation endpoints. Each one spends provider quota.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/extract", studio.Extract)
			r.Post("/goal", studio.SelectGoal)
			r.Post("/ideas/refresh", studio.RefreshIdeas)
			r.Post("/ideas/{n}/select", studio.SelectIdea)
			r.Post("/assets/{id}/animate", studio.Animate)
		})
	})

	return r
}

// staticHandler serves the embedded static assets at /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
