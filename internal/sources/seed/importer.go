package seed

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
)

// Target is the part of the reel store an import writes to.
type Target interface {
	Create(ctx context.Context, link, keyword, reward string) (domain.Reel, error)
	ToggleStatus(ctx context.Context, id int64) error
	Snapshot() []domain.Reel
}

// Result summarizes an import.
type Result struct {
	Imported int
	Skipped  int // already present (same link and keyword)
}

// planned is a validated entry ready to be written.
type planned struct {
	reel   domain.Reel
	status domain.Status
}

// Import validates every entry first, then creates the ones not already present.
// Entries marked inactive are toggled right after creation.
func Import(ctx context.Context, target Target, f File, log logger.Logger) (Result, error) {
	plan, err := validate(f)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range plan {
		if _, ok := find(target.Snapshot(), p.reel.Link, p.reel.Keyword); ok {
			res.Skipped++
			continue
		}

		if _, err := target.Create(ctx, p.reel.Link, p.reel.Keyword, p.reel.Reward); err != nil {
			return res, fmt.Errorf("import %s: %w", p.reel.Link, err)
		}
		res.Imported++

		if p.status == domain.StatusActive {
			continue
		}
		// Backend-assigned IDs are only known after the refresh
		created, ok := find(target.Snapshot(), p.reel.Link, p.reel.Keyword)
		if !ok {
			log.Warn("imported reel not found after create, status left active",
				logger.String("link", p.reel.Link))
			continue
		}
		if err := target.ToggleStatus(ctx, created.ID); err != nil {
			return res, fmt.Errorf("import %s: set inactive: %w", p.reel.Link, err)
		}
	}

	log.Info("seed import finished",
		logger.Int("imported", res.Imported),
		logger.Int("skipped", res.Skipped))
	return res, nil
}

func validate(f File) ([]planned, error) {
	plan := make([]planned, 0, len(f.Reels))
	for i, e := range f.Reels {
		reel, err := domain.NewReel(0, e.Link, e.Keyword, e.Reward)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}

		status := domain.StatusActive
		if e.Status != "" {
			if status, err = domain.ParseStatus(e.Status); err != nil {
				return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
			}
		}
		plan = append(plan, planned{reel: reel, status: status})
	}
	return plan, nil
}

func find(reels []domain.Reel, link, keyword string) (domain.Reel, bool) {
	for _, r := range reels {
		if r.Link == link && r.Keyword == keyword {
			return r, true
		}
	}
	return domain.Reel{}, false
}
