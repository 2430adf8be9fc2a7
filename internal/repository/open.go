package repository

import (
	"context"
	"fmt"

	"codebind/internal/config"
	"codebind/internal/database"

	"github.com/rs/zerolog"
)

// Open builds the document store selected by cfg.Store.Backend. The returned
// close function releases backend resources and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (DocumentStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendFile:
		logger.Info().Str("path", cfg.Store.FilePath).Msg("using file document store")
		return NewFileStore(cfg.Store.FilePath, logger), noop, nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database: %w", err)
		}
		store, err := NewPostgresStore(ctx, pool, cfg.Store.DocumentName, logger)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil

	case config.BackendS3:
		client, err := NewS3Client(ctx, cfg.S3.Region)
		if err != nil {
			return nil, noop, err
		}
		return NewS3Store(client, cfg.S3.Bucket, cfg.DocumentKey(), logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
