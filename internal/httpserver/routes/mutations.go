package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/mw"
)

func init() { Register("mutations", registerMutations) }

// registerMutations mounts the form and JSON writes behind one shared limiter.
func registerMutations(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.MutationBurst,
		RefillPerIPPerMin: d.MutationRefillM,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	})

	r.With(limit).Post("/reels", handlers.CreateForm(d))
	r.With(limit).Post("/reels/{id}/toggle", handlers.ToggleForm(d))
	r.With(limit).Post("/reels/{id}/delete", handlers.DeleteForm(d))

	r.With(limit).Post("/api/reels", handlers.CreateReel(d))
	r.With(limit).Put("/api/reels/{id}/toggle", handlers.ToggleReel(d))
	r.With(limit).Delete("/api/reels/{id}", handlers.DeleteReel(d))
}
