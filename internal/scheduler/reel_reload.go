package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
)

// Reloader is anything that can rebuild its state from the backing store.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReelReloader handles periodic and on-demand reloading of the reel collection
type ReelReloader struct {
	store         Reloader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	wg            sync.WaitGroup
	stopOnce      sync.Once
}

// NewReelReloader creates a new reel reloader. interval <= 0 disables the
// periodic refresh; manual triggers still work.
func NewReelReloader(
	store Reloader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ReelReloader {
	return &ReelReloader{
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the collection once, then keeps it fresh in the background.
// A failed first load is logged and the loop starts anyway, so the next
// tick or manual trigger can recover once the backend answers.
func (rr *ReelReloader) Start(ctx context.Context) {
	if err := rr.store.Reload(ctx); err != nil {
		rr.logger.Error("initial reel load failed, serving an empty collection until the next reload",
			logger.Error(err))
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if rr.interval > 0 {
		ticker = time.NewTicker(rr.interval)
		tick = ticker.C
	}

	rr.wg.Add(1)
	go func() {
		defer rr.wg.Done()
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				rr.reload(ctx, "interval")
			case <-rr.manualTrigger:
				rr.logger.Info("manual reload triggered")
				rr.reload(ctx, "manual")
			case <-rr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reloader and waits for the loop to exit
func (rr *ReelReloader) Stop() {
	rr.stopOnce.Do(func() { close(rr.stopCh) })
	rr.wg.Wait()
}

// Trigger requests a reload without blocking. It returns false when one is
// already queued.
func (rr *ReelReloader) Trigger() bool {
	select {
	case rr.manualTrigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (rr *ReelReloader) reload(ctx context.Context, reason string) {
	if err := rr.store.Reload(ctx); err != nil {
		rr.logger.Error("failed to reload reels",
			logger.String("reason", reason),
			logger.Error(err))
		return
	}
	rr.logger.Debug("reels reloaded", logger.String("reason", reason))
}
