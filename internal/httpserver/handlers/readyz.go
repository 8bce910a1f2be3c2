package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz is ready once the collection has been loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store.LastReload().IsZero() {
			writeJSON(w, d, http.StatusServiceUnavailable, readyzResponse{
				Ready:  false,
				Reason: "collection not loaded",
			})
			return
		}
		writeJSON(w, d, http.StatusOK, readyzResponse{Ready: true})
	}
}
