package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/sources/seed"
)

// SeedTarget is the reel store as seen by the startup import.
type SeedTarget interface {
	seed.Target
	Count() int
	LastReload() time.Time
}

// SeedImporter fills an empty collection from a seed file on startup
type SeedImporter struct {
	loader *seed.Loader
	store  SeedTarget
	logger logger.Logger
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(
	seedFile string,
	store SeedTarget,
	log logger.Logger,
) *SeedImporter {
	return &SeedImporter{
		loader: seed.NewLoader(seedFile),
		store:  store,
		logger: log,
	}
}

// Sync imports the seed file when the collection is still empty.
// A store that never loaded is skipped: its emptiness says nothing about
// what the backend holds.
func (si *SeedImporter) Sync(ctx context.Context) error {
	if si.store.LastReload().IsZero() {
		si.logger.Warn("reels not loaded yet, skipping seed import",
			logger.String("file", si.loader.Path()))
		return nil
	}
	if n := si.store.Count(); n > 0 {
		si.logger.Debug("collection not empty, skipping seed import",
			logger.Int("count", n))
		return nil
	}

	si.logger.Info("importing seed file into empty collection",
		logger.String("file", si.loader.Path()))

	f, err := si.loader.Load()
	if err != nil {
		return err
	}
	if len(f.Reels) == 0 {
		si.logger.Info("no reels found in seed file")
		return nil
	}

	_, err = seed.Import(ctx, si.store, f, si.logger)
	return err
}
