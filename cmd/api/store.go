package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/config"
	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/database"
	"github.com/xavierca1/calltracker/internal/infra/filestore"
	"github.com/xavierca1/calltracker/internal/infra/redis"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore builds the key-value backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (entity.KeyValueStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return filestore.NewMemoryStore(), nopCloser{}, nil

	case config.DriverFile:
		fs, err := filestore.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := fs.Ping(ctx); err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", fs.Path()).Msg("using file store")
		return fs, nopCloser{}, nil

	case config.DriverPostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := database.NewKVRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info().Msg("using postgres store")
		return repo, db, nil

	case config.DriverRedis:
		client := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix, logger)
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Str("prefix", cfg.RedisPrefix).Msg("using redis store")
		return client, client, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}
