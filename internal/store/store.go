// Package store persists the document collection as a single serialized blob in a key-value backend.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/debemdeboas/the-notebook/internal/model"
	"github.com/rs/zerolog"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "jb_prompts_docs"

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// KV is a synchronous single-blob-per-key store. Get reports absence with ok == false.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

var ErrEmptyKey = errors.New("store: empty key")

type Adapter struct {
	kv  KV
	key string
}

func NewAdapter(kv KV, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key}
}

func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored collection. Absent, unreadable or malformed data yields an empty
// collection and is never reported to the caller.
func (a *Adapter) Load() []model.Document {
	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		storeLogger.Warn().Err(err).Str("key", a.key).Msg("Could not read stored documents, starting empty")
		return []model.Document{}
	}
	if !ok || raw == "" {
		return []model.Document{}
	}

	var stored []model.Document
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		storeLogger.Warn().Err(err).Str("key", a.key).Msg("Stored documents are malformed, starting empty")
		return []model.Document{}
	}

	docs := make([]model.Document, 0, len(stored))
	seen := make(map[model.DocumentID]struct{}, len(stored))
	for _, doc := range stored {
		if doc.ID == "" {
			storeLogger.Warn().Str("key", a.key).Msg("Dropping stored document without an id")
			continue
		}
		if _, dup := seen[doc.ID]; dup {
			storeLogger.Warn().Str("key", a.key).Str("doc_id", string(doc.ID)).Msg("Dropping duplicate stored document")
			continue
		}
		seen[doc.ID] = struct{}{}
		docs = append(docs, doc)
	}
	return docs
}

// Save overwrites the whole stored collection. Backend failures are returned as is, wrapped.
func (a *Adapter) Save(docs []model.Document) error {
	if docs == nil {
		docs = []model.Document{}
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}

	if err := a.kv.Set(a.key, string(data)); err != nil {
		return fmt.Errorf("write documents to %q: %w", a.key, err)
	}

	storeLogger.Debug().Str("key", a.key).Int("documents", len(docs)).Int("bytes", len(data)).Msg("Documents saved")
	return nil
}
