// Package persistence defines where reels are durably stored.
//
// Exactly one Adapter is active per process. The two implementations
// live in the remote and local sub-packages.
package persistence

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
)

var (
	// ErrUnavailable wraps transport-level failures (network, timeout, I/O).
	ErrUnavailable = errors.New("persistence unavailable")
	// ErrRejected wraps a write the backing store refused (non-2xx status).
	ErrRejected = errors.New("persistence rejected request")
)

// Adapter is the capability set every persistence backend provides.
type Adapter interface {
	// Name identifies the adapter in logs and /infra ("remote", "local/file", ...).
	Name() string

	// Load returns the full collection in the order the store keeps it.
	Load(ctx context.Context) ([]domain.Reel, error)

	// Create durably stores a new, already validated reel.
	Create(ctx context.Context, reel domain.Reel) error

	// Delete removes the reel with the given id.
	Delete(ctx context.Context, id int64) error

	// UpdateStatus sets the status of the reel with the given id.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
}
