package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/web"
)

func init() { Register("page", registerPage) }

func registerPage(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Index(d))
	r.Get("/rows", handlers.Rows(d))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
}
