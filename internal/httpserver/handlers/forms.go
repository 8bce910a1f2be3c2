package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
)

// CreateForm handles the add dialog submit (POST /reels).
func CreateForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := d.Store.Create(r.Context(),
			r.PostFormValue("reel_link"),
			r.PostFormValue("comment_keyword"),
			r.PostFormValue("reward"))
		redirectBack(w, r, flashFor(err, flashCreated))
	}
}

// ToggleForm handles POST /reels/{id}/toggle.
func ToggleForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := reelID(r)
		if err == nil {
			err = d.Store.ToggleStatus(r.Context(), id)
		}
		redirectBack(w, r, flashFor(err, flashToggled))
	}
}

// DeleteForm handles POST /reels/{id}/delete. The page script sets
// confirm=yes once the user accepted the prompt.
func DeleteForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := reelID(r)
		if err == nil {
			confirmed := r.PostFormValue("confirm") == "yes"
			err = d.Store.Delete(r.Context(), id, reelstore.Confirmed(confirmed))
		}
		redirectBack(w, r, flashFor(err, flashDeleted))
	}
}

// The store already logged the failure; the page only needs the outcome.
func flashFor(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, reelstore.ErrCancelled):
		return flashCancelled
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, errInvalidID):
		return flashInvalid
	default:
		return flashFailed
	}
}

// redirectBack sends the browser back to the page (POST/redirect/GET),
// keeping the search query when the form carried one.
func redirectBack(w http.ResponseWriter, r *http.Request, flash string) {
	v := url.Values{}
	if q := r.PostFormValue("q"); q != "" {
		v.Set("q", q)
	}
	v.Set("flash", flash)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}
