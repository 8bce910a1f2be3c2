package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/config"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/deps"
	"github.com/MrSnakeDoc/reelpanel/internal/httpserver/web"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/scheduler"
	"github.com/MrSnakeDoc/reelpanel/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	backend  *Backend
	reloader *scheduler.ReelReloader
	watcher  *scheduler.FileWatcher  // nil unless the local file substrate is watched
	seeder   *scheduler.SeedImporter // nil when no seed file is configured
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Fail fast if the backing store is unreachable (redis substrate)
	backend, err := OpenBackend(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("open persistence: %w", err)
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewReelReloader(
		backend.Store,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var watcher *scheduler.FileWatcher
	if backend.DataFile != "" && cfg.WatchDataFile {
		watcher = scheduler.NewFileWatcher(backend.DataFile, reloader.Trigger, loggerClient)
	}

	var seeder *scheduler.SeedImporter
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		seeder = scheduler.NewSeedImporter(cfg.SeedFile, backend.Store, loggerClient)
	}

	tmpl, err := web.Templates()
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		Store:           backend.Store,
		Templates:       tmpl,
		Mode:            cfg.Mode,
		BackendURL:      cfg.BackendURL,
		ReloadTrigger:   reloadTrigger,
		APIRateLimit:    cfg.APIRateLimit,
		MutationBurst:   cfg.MutationBurst,
		MutationRefillM: cfg.MutationRefillPerM,
	}
	// Assign only when set, a typed nil would defeat the nil check
	if backend.Redis != nil {
		d.Substrate = backend.Redis
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		backend:  backend,
		reloader: reloader,
		watcher:  watcher,
		seeder:   seeder,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting reelpanel v%s on %s (%s mode)", version.Version, a.cfg.ListenPort, a.cfg.Mode)
	a.logger.Infof("reelpanel %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.closeBackend()

	// Loads the collection and starts the periodic refresh
	a.reloader.Start(ctx)
	defer a.reloader.Stop()
	a.logger.Info("reel reloader started",
		logger.Int("reels", a.backend.Store.Count()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.seeder != nil {
		if err := a.seeder.Sync(ctx); err != nil {
			a.logger.Warn("seed import failed, starting with the current collection",
				logger.Error(err))
		}
	}

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.logger.Warn("data file watcher disabled", logger.Error(err))
		} else {
			defer a.watcher.Stop()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ reelpanel stopped cleanly")
	return nil
}

func (a *App) closeBackend() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
	}
	_ = a.logger.Sync()
}
