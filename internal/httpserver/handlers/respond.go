package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
)

// errInvalidID is returned for a non numeric {id} path parameter.
var errInvalidID = errors.New("invalid reel id")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	writeJSON(w, d, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps store and adapter errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, reelstore.ErrCancelled):
		return http.StatusConflict
	case errors.Is(err, persistence.ErrUnavailable), errors.Is(err, persistence.ErrRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func reelID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}
