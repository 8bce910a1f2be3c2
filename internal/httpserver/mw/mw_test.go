package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, r *http.Request) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec.Code
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.NewNop())(okHandler)

	r := httptest.NewRequest(http.MethodGet, "/infra", nil)
	r.RemoteAddr = "10.2.3.4:1234"
	assert.Equal(t, http.StatusNoContent, serve(h, r))

	r.RemoteAddr = "192.168.0.1:1234"
	assert.Equal(t, http.StatusForbidden, serve(h, r))

	open := AllowOnlyCIDRS(nil, false, logger.NewNop())(okHandler)
	assert.Equal(t, http.StatusNoContent, serve(open, r))
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"panel.example.com", "*.internal.lan"}, logger.NewNop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"panel.example.com", http.StatusNoContent},
		{"PANEL.example.com:8080", http.StatusNoContent},
		{"box.internal.lan", http.StatusNoContent},
		{"internal.lan", http.StatusForbidden},
		{"evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/reload", nil)
		r.Host = tt.host
		assert.Equal(t, tt.want, serve(h, r), "host %s", tt.host)
	}
}

func TestTokenLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newTokenLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60}, now)

	ok, _, _ := l.take("a", now)
	require.True(t, ok)
	ok, remaining, _ := l.take("a", now)
	require.True(t, ok)
	require.Equal(t, 0, remaining)

	ok, _, retry := l.take("a", now)
	require.False(t, ok)
	require.Equal(t, 1, retry)

	// Other clients have their own bucket
	ok, _, _ = l.take("b", now)
	require.True(t, ok)

	// One token per second refills
	ok, _, _ = l.take("a", now.Add(time.Second))
	require.True(t, ok)
}

func TestTokenLimiterSweepsIdle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newTokenLimiter(RateLimitConfig{Burst: 1, IdleTTL: time.Minute, SweepInterval: time.Minute}, now)

	l.take("a", now)
	l.take("b", now.Add(2*time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.buckets["a"]
	assert.False(t, ok, "idle bucket should be swept")
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1})(okHandler)

	r := httptest.NewRequest(http.MethodPost, "/reels", nil)
	r.RemoteAddr = "10.0.0.1:1"
	assert.Equal(t, http.StatusNoContent, serve(h, r))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestReadLimit(t *testing.T) {
	h := ReadLimit(2, false)(okHandler)

	r := httptest.NewRequest(http.MethodGet, "/api/reels", nil)
	r.RemoteAddr = "10.0.0.9:1"
	assert.Equal(t, http.StatusNoContent, serve(h, r))
	assert.Equal(t, http.StatusNoContent, serve(h, r))
	assert.Equal(t, http.StatusTooManyRequests, serve(h, r))

	unlimited := ReadLimit(0, false)(okHandler)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, serve(unlimited, r))
	}
}

func TestStatusWriterDefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec}
	_, _ = ww.Write([]byte("hi"))

	assert.Equal(t, http.StatusOK, ww.code())
	assert.Equal(t, 2, ww.bytes)
}
