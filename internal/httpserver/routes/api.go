package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.With(mw.ReadLimit(d.APIRateLimit, d.TrustProxy)).Get("/api/reels", handlers.ListReels(d))
}
