package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domingest "github.com/kailas-cloud/nearby/internal/domain/ingest"
)

// Batch size bounds.
const (
	DefaultBatchSize = 1000
	MaxBatchSize     = 10000
)

// Pipeline inserts records of one kind in fixed-size chunks, skipping records
// whose natural key is already stored. A failing chunk is counted and reported
// and the run moves on to the next chunk.
type Pipeline[T Keyed] struct {
	kind         string
	repo         Repository[T]
	logger       *zap.Logger
	recorder     Recorder
	maxBatchSize int
	now          func() time.Time
}

// NewPipeline creates a pipeline for records of the named kind.
func NewPipeline[T Keyed](kind string, repo Repository[T], logger *zap.Logger) *Pipeline[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline[T]{
		kind:         kind,
		repo:         repo,
		logger:       logger.With(zap.String("kind", kind)),
		recorder:     nopRecorder{},
		maxBatchSize: MaxBatchSize,
		now:          time.Now,
	}
}

// WithRecorder attaches a metrics recorder.
func (p *Pipeline[T]) WithRecorder(r Recorder) *Pipeline[T] {
	if r != nil {
		p.recorder = r
	}
	return p
}

// WithMaxBatchSize configures the batch size ceiling.
func (p *Pipeline[T]) WithMaxBatchSize(size int) *Pipeline[T] {
	if size > 0 {
		p.maxBatchSize = size
	}
	return p
}

// Kind returns the record kind label.
func (p *Pipeline[T]) Kind() string { return p.kind }

// Ingest processes records in input order, batchSize at a time. A
// non-positive batchSize takes DefaultBatchSize (capped by the ceiling); one above the ceiling is
// clamped and noted as a warning.
func (p *Pipeline[T]) Ingest(ctx context.Context, records []T, batchSize int) domingest.Outcome {
	start := p.now()
	out := domingest.Outcome{TotalProcessed: len(records)}

	switch {
	case batchSize <= 0:
		batchSize = min(DefaultBatchSize, p.maxBatchSize)
	case batchSize > p.maxBatchSize:
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("batch size %d exceeds %d, using %d", batchSize, p.maxBatchSize, p.maxBatchSize))
		batchSize = p.maxBatchSize
	}

	chunks := (len(records) + batchSize - 1) / batchSize
	p.logger.Info("ingest started",
		zap.Int("records", len(records)),
		zap.Int("batch_size", batchSize),
		zap.Int("chunks", chunks),
	)

	for i := 0; i*batchSize < len(records); i++ {
		lo := i * batchSize
		hi := min(lo+batchSize, len(records))

		chunkStart := p.now()
		res := p.processChunk(ctx, i, records[lo:hi])
		elapsed := p.now().Sub(chunkStart)

		failed := 0
		if res.Status == domingest.ChunkFailed {
			failed = res.Size
			p.logger.Warn("chunk failed", zap.Int("chunk", i), zap.Int("size", res.Size), zap.Error(res.Err))
		} else {
			p.logger.Debug("chunk done",
				zap.Int("chunk", i),
				zap.Int("inserted", res.Inserted),
				zap.Int("skipped", res.Skipped),
				zap.Duration("duration", elapsed),
			)
		}
		p.recorder.ObserveChunk(p.kind, res.Inserted, res.Skipped, failed, elapsed)
		out.Add(res)
	}

	out.Duration = p.now().Sub(start)
	p.logger.Info("ingest finished",
		zap.Int("inserted", out.SuccessCount),
		zap.Int("skipped", out.SkippedCount),
		zap.Int("failed", out.FailedCount),
		zap.Duration("duration", out.Duration),
	)
	return out
}

// processChunk checks the chunk's keys against the store and inserts the new
// ones. Repeats of a key within the chunk count as skipped.
func (p *Pipeline[T]) processChunk(ctx context.Context, index int, chunk []T) domingest.ChunkResult {
	res := domingest.ChunkResult{Index: index, Size: len(chunk), Status: domingest.ChunkOK}
	fail := func(err error) domingest.ChunkResult {
		return domingest.ChunkResult{Index: index, Size: len(chunk), Status: domingest.ChunkFailed, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	seen := make(map[string]struct{}, len(chunk))
	keys := make([]string, 0, len(chunk))
	unique := make([]T, 0, len(chunk))
	for _, rec := range chunk {
		k := rec.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
		unique = append(unique, rec)
	}

	existing, err := p.repo.ExistingKeys(ctx, keys)
	if err != nil {
		return fail(fmt.Errorf("check existing keys: %w", err))
	}

	fresh := unique[:0]
	for _, rec := range unique {
		if _, ok := existing[rec.Key()]; !ok {
			fresh = append(fresh, rec)
		}
	}

	if len(fresh) > 0 {
		if err := p.repo.BulkInsert(ctx, fresh); err != nil {
			return fail(fmt.Errorf("bulk insert: %w", err))
		}
	}

	res.Inserted = len(fresh)
	res.Skipped = len(chunk) - len(fresh)
	return res
}

// Clear deletes every stored record of this kind.
func (p *Pipeline[T]) Clear(ctx context.Context) (int, error) {
	n, err := p.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", p.kind, err)
	}
	p.logger.Info("cleared", zap.Int("deleted", n))
	return n, nil
}

// Count returns the number of stored records of this kind.
func (p *Pipeline[T]) Count(ctx context.Context) (int, error) {
	n, err := p.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", p.kind, err)
	}
	return n, nil
}

// ClearAll clears every kind in order and returns the total removed. Later
// kinds are still attempted when an earlier one fails.
func ClearAll(ctx context.Context, clearers ...Clearer) (int, error) {
	total := 0
	var errs []error
	for _, c := range clearers {
		n, err := c.Clear(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

type nopRecorder struct{}

func (nopRecorder) ObserveChunk(string, int, int, int, time.Duration) {}
