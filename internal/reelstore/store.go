// Package reelstore owns the authoritative in-memory reel collection and
// keeps it in sync with the active persistence adapter.
package reelstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/index"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/metrics"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
)

// ErrCancelled is returned when a delete was not confirmed.
var ErrCancelled = errors.New("operation cancelled")

// IDAssigner is implemented by adapters whose backend assigns reel IDs itself.
type IDAssigner interface {
	AssignsIDs() bool
}

// Store is the single owner of the reel collection.
//
// Mutations are serialized: each one is a confirmed adapter write followed
// by a refresh from the adapter, so the collection only changes after the
// backing store accepted the write.
type Store struct {
	adapter persistence.Adapter
	coll    *index.Collection
	ids     *domain.IDGenerator
	logger  logger.Logger

	mu    sync.Mutex // serializes mutations and refreshes
	group singleflight.Group
}

// New creates a store. Call Reload before serving to populate it.
func New(adapter persistence.Adapter, coll *index.Collection, log logger.Logger) *Store {
	if coll == nil {
		coll = index.NewCollection()
	}
	return &Store{
		adapter: adapter,
		coll:    coll,
		ids:     domain.NewIDGenerator(),
		logger:  log,
	}
}

// AdapterName returns the name of the active persistence adapter.
func (s *Store) AdapterName() string { return s.adapter.Name() }

// Source names the adapter the current collection was loaded from, empty
// before the first successful reload.
func (s *Store) Source() string { return s.coll.Source() }

// Snapshot returns a copy of the full collection in display order.
func (s *Store) Snapshot() []domain.Reel { return s.coll.All() }

// Get returns one reel by ID.
func (s *Store) Get(id int64) (domain.Reel, bool) { return s.coll.Get(id) }

// Count returns the collection size.
func (s *Store) Count() int { return s.coll.Count() }

// LastReload returns when the collection was last rebuilt.
func (s *Store) LastReload() time.Time { return s.coll.LastReload() }

// Stats computes the counters over the full collection.
func (s *Store) Stats() domain.Stats { return domain.ComputeStats(s.coll.All()) }

// Reload rebuilds the collection from the adapter. Concurrent callers
// share one in-flight reload.
func (s *Store) Reload(ctx context.Context) error {
	_, err, shared := s.group.Do("reload", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.refreshLocked(ctx)
	})
	if shared {
		s.logger.Debug("joined in-flight reload")
	}
	return err
}

// Create validates the input, writes a new active reel and refreshes.
// The returned reel has ID 0 when the backend assigns IDs itself.
func (s *Store) Create(ctx context.Context, link, keyword, reward string) (domain.Reel, error) {
	var id int64
	if !s.backendAssignsIDs() {
		id = s.ids.Next()
	}

	reel, err := domain.NewReel(id, link, keyword, reward)
	if err != nil {
		metrics.RecordOperation("create", metrics.ResultInvalid)
		return domain.Reel{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.Create(ctx, reel); err != nil {
		s.fail("create", err, logger.String("link", reel.Link))
		return domain.Reel{}, fmt.Errorf("create reel: %w", err)
	}
	if err := s.refreshLocked(ctx); err != nil {
		s.fail("create", err)
		return domain.Reel{}, fmt.Errorf("reel created but reload failed: %w", err)
	}

	metrics.RecordOperation("create", metrics.ResultOK)
	s.logger.Info("reel created",
		logger.Int64("id", reel.ID),
		logger.String("keyword", reel.Keyword),
		logger.String("adapter", s.adapter.Name()))
	return reel, nil
}

// Delete removes a reel once the confirmer agreed.
// An unknown id is a no-op; a refusal returns ErrCancelled and changes nothing.
func (s *Store) Delete(ctx context.Context, id int64, confirmer Confirmer) error {
	reel, ok := s.coll.Get(id)
	if !ok {
		metrics.RecordOperation("delete", metrics.ResultNoop)
		s.logger.Debug("delete of unknown reel ignored", logger.Int64("id", id))
		return nil
	}

	// Ask outside the lock, a prompt may block for a while
	if confirmer == nil || !confirmer.Confirm(ctx, reel) {
		metrics.RecordOperation("delete", metrics.ResultCancelled)
		s.logger.Info("reel delete cancelled", logger.Int64("id", id))
		return ErrCancelled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another operation may have removed it while we were asking
	if _, ok := s.coll.Get(id); !ok {
		metrics.RecordOperation("delete", metrics.ResultNoop)
		return nil
	}

	if err := s.adapter.Delete(ctx, id); err != nil {
		s.fail("delete", err, logger.Int64("id", id))
		return fmt.Errorf("delete reel %d: %w", id, err)
	}
	if err := s.refreshLocked(ctx); err != nil {
		s.fail("delete", err)
		return fmt.Errorf("reel deleted but reload failed: %w", err)
	}

	metrics.RecordOperation("delete", metrics.ResultOK)
	s.logger.Info("reel deleted", logger.Int64("id", id))
	return nil
}

// ToggleStatus flips active/inactive. An unknown id is a no-op.
func (s *Store) ToggleStatus(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reel, ok := s.coll.Get(id)
	if !ok {
		metrics.RecordOperation("toggle", metrics.ResultNoop)
		s.logger.Debug("toggle of unknown reel ignored", logger.Int64("id", id))
		return nil
	}

	next := reel.Status.Toggle()
	if err := s.adapter.UpdateStatus(ctx, id, next); err != nil {
		s.fail("toggle", err, logger.Int64("id", id))
		return fmt.Errorf("update status of reel %d: %w", id, err)
	}
	if err := s.refreshLocked(ctx); err != nil {
		s.fail("toggle", err)
		return fmt.Errorf("status updated but reload failed: %w", err)
	}

	metrics.RecordOperation("toggle", metrics.ResultOK)
	s.logger.Info("reel status changed",
		logger.Int64("id", id),
		logger.String("status", string(next)))
	return nil
}

// refreshLocked replaces the collection with what the adapter holds.
// s.mu must be held.
func (s *Store) refreshLocked(ctx context.Context) error {
	reels, err := s.adapter.Load(ctx)
	metrics.RecordReload(err)
	if err != nil {
		return fmt.Errorf("load reels from %s: %w", s.adapter.Name(), err)
	}

	if dropped := s.coll.Replace(reels, s.adapter.Name()); dropped > 0 {
		s.logger.Warn("dropped reels with duplicate ids",
			logger.Int("dropped", dropped),
			logger.String("adapter", s.adapter.Name()))
	}
	for _, r := range reels {
		s.ids.Observe(r.ID)
	}

	st := domain.ComputeStats(s.coll.All())
	metrics.SetCollection(st.Active, st.Inactive)
	s.logger.Debug("collection refreshed",
		logger.Int("count", s.coll.Count()),
		logger.String("adapter", s.adapter.Name()))
	return nil
}

func (s *Store) backendAssignsIDs() bool {
	a, ok := s.adapter.(IDAssigner)
	return ok && a.AssignsIDs()
}

func (s *Store) fail(op string, err error, fields ...logger.Field) {
	metrics.RecordOperation(op, metrics.ResultError)
	fields = append(fields, logger.String("operation", op), logger.Error(err))
	s.logger.Error("reel operation failed", fields...)
}
