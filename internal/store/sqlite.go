package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/debemdeboas/the-notebook/internal/db"
	"github.com/debemdeboas/the-notebook/internal/util"
	"github.com/debemdeboas/the-notebook/internal/util/compression"
)

// SQLiteKV keeps compressed blobs in the kv table. Each row records the codec it was written
// with, so changing the configured compression never strands older data.
type SQLiteKV struct {
	db         db.DB
	compressor compression.Compressor
}

func NewSQLiteKV(database db.DB, compressor compression.Compressor) *SQLiteKV {
	if compressor == nil {
		compressor = compression.ZstdCompressor{}
	}
	return &SQLiteKV{db: database, compressor: compressor}
}

func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var blob []byte
	var codec string

	err := s.db.QueryRow(`SELECT value, codec FROM kv WHERE key = ?`, key).Scan(&blob, &codec)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading key %q: %w", key, err)
	}

	decoder, err := compression.ForName(codec)
	if err != nil {
		return "", false, err
	}
	content, err := decoder.Decompress(blob)
	if err != nil {
		return "", false, fmt.Errorf("error decompressing key %q: %w", key, err)
	}
	return string(content), true, nil
}

func (s *SQLiteKV) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	compressed, err := s.compressor.Compress([]byte(value))
	if err != nil {
		return fmt.Errorf("error compressing key %q: %w", key, err)
	}

	// Autosave rewrites an unchanged collection every few seconds; skip those writes.
	res, err := s.db.Exec(`
INSERT INTO kv (key, value, codec, content_hash, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    codec = excluded.codec,
    content_hash = excluded.content_hash,
    updated_at = excluded.updated_at
WHERE kv.content_hash != excluded.content_hash`,
		key, compressed, s.compressor.Name(), util.ContentHashString(value),
	)
	if err != nil {
		return fmt.Errorf("error saving key %q: %w", key, err)
	}

	if n, err := res.RowsAffected(); err == nil {
		storeLogger.Debug().Str("key", key).Int64("rows", n).Msg("Blob written")
	}
	return nil
}
