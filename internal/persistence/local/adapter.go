// Package local persists the reel collection as one serialized array
// under a single key, rewritten wholesale on every mutation.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
)

// Substrate is the raw byte storage behind the adapter (a file, a Redis key).
type Substrate interface {
	Name() string
	// Read returns nil, nil when nothing has been stored yet.
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// record is the persisted layout of one reel.
type record struct {
	ID      int64  `json:"id"`
	Link    string `json:"link"`
	Comment string `json:"comment"`
	Reward  string `json:"reward"`
	Enabled bool   `json:"enabled"`
}

func toRecord(r domain.Reel) record {
	return record{
		ID:      r.ID,
		Link:    r.Link,
		Comment: r.Keyword,
		Reward:  r.Reward,
		Enabled: r.IsActive(),
	}
}

func (rec record) reel() domain.Reel {
	return domain.Reel{
		ID:      rec.ID,
		Link:    rec.Link,
		Keyword: rec.Comment,
		Reward:  rec.Reward,
		Status:  domain.StatusFromBool(rec.Enabled),
	}
}

// Adapter stores reels newest first in a Substrate.
type Adapter struct {
	mu        sync.Mutex
	substrate Substrate
	logger    logger.Logger
}

var _ persistence.Adapter = (*Adapter)(nil)

// New creates a local adapter on top of the given substrate.
func New(substrate Substrate, log logger.Logger) *Adapter {
	return &Adapter{
		substrate: substrate,
		logger:    log,
	}
}

// Name implements persistence.Adapter.
func (a *Adapter) Name() string { return "local/" + a.substrate.Name() }

// Load returns the stored collection. Missing or corrupt data loads as
// an empty collection; only substrate I/O failures are reported.
func (a *Adapter) Load(ctx context.Context) ([]domain.Reel, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	recs, err := a.read(ctx)
	if err != nil {
		return nil, err
	}
	reels := make([]domain.Reel, 0, len(recs))
	for _, rec := range recs {
		reels = append(reels, rec.reel())
	}
	return reels, nil
}

// Create prepends the reel so the newest one comes first.
func (a *Adapter) Create(ctx context.Context, reel domain.Reel) error {
	return a.mutate(ctx, func(recs []record) []record {
		return append([]record{toRecord(reel)}, recs...)
	})
}

// Delete drops the reel with the given id. Unknown ids are ignored.
func (a *Adapter) Delete(ctx context.Context, id int64) error {
	return a.mutate(ctx, func(recs []record) []record {
		out := recs[:0]
		for _, rec := range recs {
			if rec.ID != id {
				out = append(out, rec)
			}
		}
		return out
	})
}

// UpdateStatus rewrites the enabled flag of the reel with the given id.
func (a *Adapter) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return a.mutate(ctx, func(recs []record) []record {
		for i := range recs {
			if recs[i].ID == id {
				recs[i].Enabled = status == domain.StatusActive
			}
		}
		return recs
	})
}

// mutate is read-modify-write of the whole array under the adapter lock.
func (a *Adapter) mutate(ctx context.Context, fn func([]record) []record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	recs, err := a.read(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(fn(recs))
	if err != nil {
		return fmt.Errorf("encode reels: %w", err)
	}
	if err := a.substrate.Write(ctx, data); err != nil {
		return fmt.Errorf("%s write: %w: %w", a.substrate.Name(), persistence.ErrUnavailable, err)
	}
	return nil
}

func (a *Adapter) read(ctx context.Context) ([]record, error) {
	data, err := a.substrate.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w: %w", a.substrate.Name(), persistence.ErrUnavailable, err)
	}
	if len(data) == 0 {
		return []record{}, nil
	}

	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		a.logger.Warn("stored reels are unreadable, starting with an empty collection",
			logger.String("substrate", a.substrate.Name()),
			logger.Error(err))
		return []record{}, nil
	}
	if recs == nil {
		recs = []record{}
	}
	return recs, nil
}
