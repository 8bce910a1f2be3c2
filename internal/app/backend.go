package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/reelpanel/internal/config"
	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence/local"
	"github.com/MrSnakeDoc/reelpanel/internal/persistence/remote"
	"github.com/MrSnakeDoc/reelpanel/internal/redis"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
	redisstore "github.com/MrSnakeDoc/reelpanel/internal/store/redis"
)

// Backend is the reel store wired to the adapter selected by configuration.
type Backend struct {
	Store    *reelstore.Store
	Redis    *redisstore.Store // set for the local redis substrate only
	DataFile string            // set for the local file substrate only

	redisClient *goredis.Client
}

// OpenBackend builds the persistence adapter for cfg and the store on top
// of it. The store is not loaded yet.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	b := &Backend{}

	adapter, err := b.openAdapter(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	b.Store = reelstore.New(adapter, nil, log)
	log.Info("persistence adapter ready", logger.String("adapter", adapter.Name()))
	return b, nil
}

func (b *Backend) openAdapter(ctx context.Context, cfg *config.Config, log logger.Logger) (persistence.Adapter, error) {
	if cfg.Mode == config.ModeRemote {
		a, err := remote.New(remote.Options{
			BaseURL: cfg.BackendURL,
			Timeout: cfg.BackendTimeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("remote adapter: %w", err)
		}
		return a, nil
	}

	if cfg.LocalSubstrate == config.SubstrateRedis {
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		b.redisClient = client
		b.Redis = redisstore.NewStore(client, cfg.RedisNamespace)
		return local.New(b.Redis, log), nil
	}

	sub, err := local.NewFileSubstrate(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("file substrate: %w", err)
	}
	b.DataFile = sub.Path()
	return local.New(sub, log), nil
}

// Close releases the Redis connection, if any.
func (b *Backend) Close() error {
	if b.redisClient == nil {
		return nil
	}
	return b.redisClient.Close()
}
