package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/web"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence/local"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
)

type harness struct {
	t       *testing.T
	store   *reelstore.Store
	trigger chan struct{}
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	sub, err := local.NewFileSubstrate(filepath.Join(t.TempDir(), local.DefaultFileName))
	require.NoError(t, err)

	log := logger.NewNop()
	store := reelstore.New(local.New(sub, log), nil, log)
	require.NoError(t, store.Reload(context.Background()))

	tmpl, err := web.Templates()
	require.NoError(t, err)

	trigger := make(chan struct{}, 1)
	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Version:         "test",
		Store:           store,
		Templates:       tmpl,
		Mode:            "local",
		ReloadTrigger:   trigger,
		MutationBurst:   100,
		MutationRefillM: 100,
	}

	return &harness{
		t:       t,
		store:   store,
		trigger: trigger,
		handler: NewRouter(log, d, 5*time.Second),
	}
}

func (h *harness) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	h.t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", contentType)
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, r)
	return rec
}

func (h *harness) postForm(target string, v url.Values) *httptest.ResponseRecorder {
	return h.do(http.MethodPost, target, v.Encode(), "application/x-www-form-urlencoded")
}

func (h *harness) postJSON(target, body string) *httptest.ResponseRecorder {
	return h.do(http.MethodPost, target, body, "application/json")
}

func (h *harness) seed(link, keyword, reward string) domain.Reel {
	h.t.Helper()
	reel, err := h.store.Create(context.Background(), link, keyword, reward)
	require.NoError(h.t, err)
	return reel
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type listBody struct {
	Reels       []domain.Reel `json:"reels"`
	Stats       domain.Stats  `json:"stats"`
	Placeholder string        `json:"placeholder"`
}

func TestPageRendersPlaceholderAndStats(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No reels yet")
	assert.Contains(t, rec.Body.String(), `src="/static/app.js"`)
	assert.NotContains(t, rec.Body.String(), "onclick=")

	h.seed("http://a.co", "foo", "")

	rec = h.do(http.MethodGet, "/?q=bar", "", "")
	assert.Contains(t, rec.Body.String(), "No results found")
	assert.Contains(t, rec.Body.String(), "<span>1</span> total")
}

func TestRowsFragment(t *testing.T) {
	h := newHarness(t)
	h.seed("http://a.co", "foo", "")
	h.seed("http://b.co", "bar", "ebook")

	rec := h.do(http.MethodGet, "/rows?q=ebook", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "BAR")
	assert.NotContains(t, body, "FOO")
	assert.NotContains(t, body, "<html")
}

func TestFormsKeepSearchQuery(t *testing.T) {
	h := newHarness(t)
	reel := h.seed("http://b.co", "bar", "ebook")
	id := strconv.FormatInt(reel.ID, 10)

	// Both row forms and the add form carry the active query
	rows := h.do(http.MethodGet, "/rows?q=ebook", "", "").Body.String()
	assert.Equal(t, 2, strings.Count(rows, `name="q" value="ebook"`))

	page := h.do(http.MethodGet, "/?q=ebook", "", "").Body.String()
	assert.Contains(t, page, `id="add-q" value="ebook"`)

	noQuery := h.do(http.MethodGet, "/rows", "", "").Body.String()
	assert.NotContains(t, noQuery, `name="q"`)

	rec := h.postForm("/reels/"+id+"/toggle", url.Values{"q": {"ebook"}})
	assert.Equal(t, "/?flash=toggled&q=ebook", rec.Header().Get("Location"))
}

func TestStaticAssets(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/static/app.js", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "addEventListener")
}

func TestFormLifecycle(t *testing.T) {
	h := newHarness(t)

	rec := h.postForm("/reels", url.Values{"reel_link": {"http://x.co"}, "comment_keyword": {"win"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?flash=created", rec.Header().Get("Location"))

	reel := h.store.Snapshot()[0]
	assert.Equal(t, "WIN", reel.Keyword)
	id := strconv.FormatInt(reel.ID, 10)

	rec = h.postForm("/reels/"+id+"/toggle", nil)
	assert.Equal(t, "/?flash=toggled", rec.Header().Get("Location"))
	got, _ := h.store.Get(reel.ID)
	assert.Equal(t, domain.StatusInactive, got.Status)

	// No confirmation, nothing happens
	rec = h.postForm("/reels/"+id+"/delete", url.Values{"q": {"win"}})
	assert.Equal(t, "/?flash=cancelled&q=win", rec.Header().Get("Location"))
	assert.Equal(t, 1, h.store.Count())

	rec = h.postForm("/reels/"+id+"/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, "/?flash=deleted", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.store.Count())
}

func TestFormRejectsMissingFields(t *testing.T) {
	h := newHarness(t)

	rec := h.postForm("/reels", url.Values{"reel_link": {"  "}, "comment_keyword": {"win"}})
	assert.Equal(t, "/?flash=invalid", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.store.Count())

	page := h.do(http.MethodGet, rec.Header().Get("Location"), "", "")
	assert.Contains(t, page.Body.String(), "Reel link and comment keyword are required.")
}

func TestAPIList(t *testing.T) {
	h := newHarness(t)
	h.seed("http://a.co", "foo", "")

	rec := h.do(http.MethodGet, "/api/reels?q=foo", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[listBody](t, rec)
	require.Len(t, body.Reels, 1)
	assert.Equal(t, domain.Stats{Total: 1, Active: 1}, body.Stats)

	body = decode[listBody](t, h.do(http.MethodGet, "/api/reels?q=bar", "", ""))
	assert.Empty(t, body.Reels)
	assert.Equal(t, "No results found", body.Placeholder)
	assert.Equal(t, 1, body.Stats.Total)
}

func TestAPILifecycle(t *testing.T) {
	h := newHarness(t)

	rec := h.postJSON("/api/reels", `{"reel_link":"http://x.co","comment_keyword":"win","reward":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[struct {
		Reel  domain.Reel `json:"reel"`
		Count int         `json:"count"`
	}](t, rec)
	assert.Equal(t, "WIN", created.Reel.Keyword)
	assert.Equal(t, 1, created.Count)

	body := decode[listBody](t, h.do(http.MethodGet, "/api/reels", "", ""))
	assert.Equal(t, domain.Stats{Total: 1, Active: 1, Inactive: 0, WithReward: 0}, body.Stats)

	id := strconv.FormatInt(created.Reel.ID, 10)

	rec = h.do(http.MethodPut, "/api/reels/"+id+"/toggle", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(http.MethodPut, "/api/reels/"+id+"/toggle", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := h.store.Get(created.Reel.ID)
	assert.Equal(t, domain.StatusActive, got.Status)

	rec = h.do(http.MethodDelete, "/api/reels/"+id, "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, h.store.Count())

	rec = h.do(http.MethodDelete, "/api/reels/"+id+"?confirm=true", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, h.store.Count())

	// Unknown id is a no-op, not an error
	rec = h.do(http.MethodDelete, "/api/reels/"+id+"?confirm=true", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIBadInput(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusBadRequest, h.postJSON("/api/reels", `{"reel_link":"http://x.co"}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.postJSON("/api/reels", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/api/reels/abc/toggle", "", "").Code)
}

func TestOpsEndpoints(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/readyz", "", "").Code)

	rec := h.do(http.MethodGet, "/infra", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	infra := decode[struct {
		State      string `json:"state"`
		Adapter    string `json:"adapter"`
		Components map[string]struct {
			Source string `json:"source"`
		} `json:"components"`
	}](t, rec)
	assert.Equal(t, "ok", infra.State)
	assert.Equal(t, "local/file", infra.Adapter)
	assert.Equal(t, "local/file", infra.Components["collection"].Source)

	rec = h.do(http.MethodPost, "/reload", "", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = h.do(http.MethodPost, "/reload", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "second trigger while one is queued")
	<-h.trigger

	rec = h.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reelpanel_reloads_total")
}
