package store

import (
	"context"
	"fmt"
	"os"

	"github.com/debemdeboas/the-notebook/internal/config"
	"github.com/debemdeboas/the-notebook/internal/db"
	"github.com/debemdeboas/the-notebook/internal/util/compression"
)

// Open builds the KV backend named by cfg. The returned close function releases it.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, func() error, error) {
	noop := func() error { return nil }

	compressor, err := compression.ForName(cfg.Compression)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), noop, nil

	case config.BackendFS:
		kv, err := NewFSKV(cfg.FSDir)
		if err != nil {
			return nil, nil, err
		}
		return kv, noop, nil

	case config.BackendSQLite:
		database := db.NewSQLite(cfg.SQLitePath)
		if err := database.InitDB(); err != nil {
			return nil, nil, fmt.Errorf("error opening sqlite store: %w", err)
		}
		return NewSQLiteKV(database, compressor), database.Close, nil

	case config.BackendS3:
		opts := S3Options{
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Region:          cfg.S3.Region,
			BaseEndpoint:    cfg.S3.Endpoint,
			AccessKeyID:     os.Getenv(config.EnvS3AccessKeyID),
			AccessKeySecret: os.Getenv(config.EnvS3SecretKey),
			Timeout:         cfg.S3.Timeout,
		}
		client, err := NewS3Client(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		return NewS3KV(client, opts, compressor), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
