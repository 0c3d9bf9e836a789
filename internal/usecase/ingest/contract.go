package ingest

import (
	"context"
	"time"
)

// Keyed is a record with a natural key used for duplicate suppression.
type Keyed interface {
	Key() string
}

// Repository is the storage contract for one record kind.
type Repository[T Keyed] interface {
	ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
	BulkInsert(ctx context.Context, records []T) error
	DeleteAll(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// Recorder observes processed chunks.
type Recorder interface {
	ObserveChunk(kind string, inserted, skipped, failed int, d time.Duration)
}

// Clearer bulk-deletes one record kind.
type Clearer interface {
	Kind() string
	Clear(ctx context.Context) (int, error)
}
