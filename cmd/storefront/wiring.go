package main

import (
	"context"
	"time"

	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/checkout"
	"github.com/fjod/kshop/internal/config"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPingTimeout = 5 * time.Second

// buildLookup assembles the catalog source and, when Redis is configured,
// the cache in front of it. The returned func releases what was opened.
func buildLookup(ctx context.Context, cfg *config.Config, l *zap.Logger) (catalog.Lookup, func(), error) {
	var (
		source  catalog.Lookup
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.CatalogSource {
	case config.CatalogSourceSQLite:
		repo, err := openSQLite(cfg.CatalogDBPath)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = repo.Close() })
		source = repo
		l.Info("serving catalog from sqlite", zap.String("path", cfg.CatalogDBPath))
	default:
		source = catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogTimeout)
		l.Info("serving catalog from http", zap.String("url", cfg.CatalogURL))
	}

	if !cfg.CacheEnabled() {
		return source, closeAll, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	closers = append(closers, func() { _ = redisClient.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		closeAll()
		return nil, nil, errors.Wrap(err, "redis connection failed")
	}
	l.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	cache := catalog.NewRedisCache(redisClient, cfg.CacheTTL)
	return catalog.NewCached(source, cache, l), closeAll, nil
}

func openSQLite(path string) (*catalog.SQLiteRepository, error) {
	repo, err := catalog.NewSQLiteRepository(path)
	if err != nil {
		return nil, err
	}
	if err := repo.RunMigrations(); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func migrateSQLite(path string) error {
	repo, err := openSQLite(path)
	if err != nil {
		return err
	}
	return repo.Close()
}

// buildPublisher picks Kafka when brokers are configured and the log
// otherwise.
func buildPublisher(cfg *config.Config, l *zap.Logger) (checkout.Publisher, func()) {
	if !cfg.KafkaEnabled() {
		return checkout.NewLogPublisher(l), func() {}
	}

	p := checkout.NewKafkaPublisher(cfg.OrderTopic, cfg.KafkaBrokers...)
	l.Info("publishing orders to kafka",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.OrderTopic))
	return p, func() {
		if err := p.Close(); err != nil {
			l.Warn("failed to close kafka writer", zap.Error(err))
		}
	}
}
