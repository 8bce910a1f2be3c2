package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
)

// DefaultDebounce collapses bursts of file events into one reload.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher asks for a reload whenever the local data file changes on disk,
// e.g. when it is edited by hand or restored from a backup.
type FileWatcher struct {
	path     string
	debounce time.Duration
	notify   func() bool
	logger   logger.Logger

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewFileWatcher creates a watcher for path. notify is called after each
// debounced change; it must not block.
func NewFileWatcher(path string, notify func() bool, log logger.Logger) *FileWatcher {
	return &FileWatcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		notify:   notify,
		logger:   log,
	}
}

// Start begins watching. The parent directory is watched, not the file,
// because atomic writes replace the file and would drop a direct watch.
func (fw *FileWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(fw.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch data dir: %w", err)
	}
	fw.watcher = watcher

	fw.logger.Info("watching data file for changes",
		logger.String("path", fw.path))

	fw.wg.Add(1)
	go fw.loop(ctx)
	return nil
}

// Stop closes the watcher and waits for the loop to exit
func (fw *FileWatcher) Stop() {
	if fw.watcher != nil {
		_ = fw.watcher.Close()
	}
	fw.wg.Wait()
}

func (fw *FileWatcher) loop(ctx context.Context) {
	defer fw.wg.Done()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			fw.logger.Debug("data file changed",
				logger.String("op", event.Op.String()))

			// Reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(fw.debounce, func() {
				if !fw.notify() {
					fw.logger.Debug("reload already pending, change event coalesced")
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("data file watcher error", logger.Error(err))
		}
	}
}
