package handlers

import (
	"bytes"
	"net/http"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/view"
)

// Flash codes carried in the redirect after a form submit.
const (
	flashCreated   = "created"
	flashToggled   = "toggled"
	flashDeleted   = "deleted"
	flashCancelled = "cancelled"
	flashInvalid   = "invalid"
	flashFailed    = "failed"
)

var flashMessages = map[string]string{
	flashCreated:   "Reel added.",
	flashToggled:   "Status updated.",
	flashDeleted:   "Reel deleted.",
	flashCancelled: "Delete cancelled.",
	flashInvalid:   "Reel link and comment keyword are required.",
	flashFailed:    "The change could not be saved, please retry.",
}

// Index renders the admin page for GET /?q=.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := view.Build(d.Store.Snapshot(), r.URL.Query().Get("q"))
		page.Flash = flashMessages[r.URL.Query().Get("flash")]
		render(w, d, "index", page)
	}
}

// Rows renders only the table body, used by live search.
func Rows(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		render(w, d, "rows", view.Build(d.Store.Snapshot(), q).Table)
	}
}

// render executes into a buffer so a template error never sends half a page.
func render(w http.ResponseWriter, d deps.Deps, name string, data any) {
	var buf bytes.Buffer
	if err := d.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		d.Logger.Error("template render failed",
			logger.String("template", name),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}
