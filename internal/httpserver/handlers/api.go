package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
	"github.com/MrSnakeDoc/reelpanel/internal/view"
)

// maxBody bounds JSON request bodies.
const maxBody = 64 << 10

type listResponse struct {
	Query       string        `json:"query,omitempty"`
	Reels       []domain.Reel `json:"reels"`
	Stats       domain.Stats  `json:"stats"`
	Placeholder string        `json:"placeholder,omitempty"`
}

type createRequest struct {
	Link    string `json:"reel_link"`
	Keyword string `json:"comment_keyword"`
	Reward  string `json:"reward"`
}

type createResponse struct {
	Reel  *domain.Reel `json:"reel,omitempty"` // nil when the backend assigns the ID
	Count int          `json:"count"`
}

type mutationResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// ListReels returns the filtered reels and the unfiltered counters (GET /api/reels?q=).
func ListReels(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Store.Snapshot()
		q := r.URL.Query().Get("q")
		filtered := domain.Filter(all, q)
		table := view.Render(filtered, q)

		writeJSON(w, d, http.StatusOK, listResponse{
			Query:       table.Query,
			Reels:       filtered,
			Stats:       domain.ComputeStats(all),
			Placeholder: table.Placeholder,
		})
	}
}

// CreateReel handles POST /api/reels.
func CreateReel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, d, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
			return
		}

		reel, err := d.Store.Create(r.Context(), req.Link, req.Keyword, req.Reward)
		if err != nil {
			writeError(w, d, err)
			return
		}

		resp := createResponse{Count: d.Store.Count()}
		if reel.ID != 0 {
			resp.Reel = &reel
		}
		writeJSON(w, d, http.StatusCreated, resp)
	}
}

// ToggleReel handles PUT /api/reels/{id}/toggle.
func ToggleReel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := reelID(r)
		if err == nil {
			err = d.Store.ToggleStatus(r.Context(), id)
		}
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, mutationResponse{OK: true, Count: d.Store.Count()})
	}
}

// DeleteReel handles DELETE /api/reels/{id}?confirm=true. Without the
// confirmation the store refuses and 409 is returned.
func DeleteReel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := reelID(r)
		if err == nil {
			confirmed := r.URL.Query().Get("confirm") == "true"
			err = d.Store.Delete(r.Context(), id, reelstore.Confirmed(confirmed))
		}
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, mutationResponse{OK: true, Count: d.Store.Count()})
	}
}
