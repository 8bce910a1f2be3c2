package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
)

const (
	// DefaultTimeout bounds a single round trip to the backend.
	DefaultTimeout = 5 * time.Second

	// maxErrorBody caps how much of a failed response is kept for logs.
	maxErrorBody = 512
)

// Options configures the remote adapter.
type Options struct {
	BaseURL string        // ex: "http://10.88.0.3:8080"
	Timeout time.Duration // per request, 0 => DefaultTimeout
	Client  *http.Client  // optional, overrides the default transport
}

// Adapter talks to the reels REST backend. Every operation is exactly one request.
type Adapter struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

var _ persistence.Adapter = (*Adapter)(nil)

// createRequest is the body expected by POST /add_reel.
type createRequest struct {
	Link    string `json:"reel_link"`
	Keyword string `json:"comment_keyword"`
	Reward  string `json:"reward"`
}

// statusRequest is the body expected by PUT /update_status/{id}.
type statusRequest struct {
	Status domain.Status `json:"status"`
}

// New creates a remote adapter. BaseURL must be an absolute http(s) URL.
func New(opts Options, log logger.Logger) (*Adapter, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("remote: invalid base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Adapter{
		baseURL: base,
		client:  client,
		logger:  log,
	}, nil
}

// Name implements persistence.Adapter.
func (a *Adapter) Name() string { return "remote" }

// AssignsIDs reports that the backend, not the panel, picks reel IDs.
func (a *Adapter) AssignsIDs() bool { return true }

// Load fetches the whole collection with GET /reels.
// The order returned by the backend is kept as-is.
func (a *Adapter) Load(ctx context.Context) ([]domain.Reel, error) {
	resp, err := a.do(ctx, http.MethodGet, "/reels", nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var reels []domain.Reel
	if err := json.NewDecoder(resp.Body).Decode(&reels); err != nil {
		return nil, fmt.Errorf("decode reels: %w: %w", persistence.ErrUnavailable, err)
	}
	if reels == nil {
		reels = []domain.Reel{}
	}
	return reels, nil
}

// Create posts a new reel. The backend assigns the persisted ID.
func (a *Adapter) Create(ctx context.Context, reel domain.Reel) error {
	return a.send(ctx, http.MethodPost, "/add_reel", createRequest{
		Link:    reel.Link,
		Keyword: reel.Keyword,
		Reward:  reel.Reward,
	})
}

// Delete removes a reel with DELETE /delete_reel/{id}.
func (a *Adapter) Delete(ctx context.Context, id int64) error {
	return a.send(ctx, http.MethodDelete, "/delete_reel/"+strconv.FormatInt(id, 10), nil)
}

// UpdateStatus sets a reel status with PUT /update_status/{id}.
func (a *Adapter) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return a.send(ctx, http.MethodPut, "/update_status/"+strconv.FormatInt(id, 10), statusRequest{Status: status})
}

// send performs a write and only cares about the status code.
func (a *Adapter) send(ctx context.Context, method, path string, body any) error {
	resp, err := a.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do executes one request and turns transport errors and non-2xx codes into
// persistence errors. On success the caller owns resp.Body.
func (a *Adapter) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, persistence.ErrUnavailable, err)
	}

	a.logger.Debug("backend round trip",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	return resp, nil
}

// requestID reuses the inbound request ID when there is one.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
