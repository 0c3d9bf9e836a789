package ingest

import (
	"fmt"
	"time"
)

// ChunkStatus is the processing outcome of a single chunk.
type ChunkStatus string

// Chunk status values.
const (
	ChunkOK     ChunkStatus = "ok"
	ChunkFailed ChunkStatus = "failed"
)

// ChunkResult is the accounting for one chunk of an ingestion run.
type ChunkResult struct {
	Index    int
	Size     int
	Inserted int
	Skipped  int
	Status   ChunkStatus
	Err      error
}

// Outcome summarizes one ingestion run.
type Outcome struct {
	TotalProcessed int
	SuccessCount   int
	SkippedCount   int
	FailedCount    int
	Duration       time.Duration
	Errors         []string
	Warnings       []string
	Chunks         []ChunkResult
}

// Add folds a chunk result into the outcome.
func (o *Outcome) Add(c ChunkResult) {
	o.Chunks = append(o.Chunks, c)
	if c.Status == ChunkFailed {
		o.FailedCount += c.Size
		o.Errors = append(o.Errors, fmt.Sprintf("chunk %d: %v", c.Index, c.Err))
		return
	}
	o.SuccessCount += c.Inserted
	o.SkippedCount += c.Skipped
	if c.Skipped > 0 {
		o.Warnings = append(o.Warnings,
			fmt.Sprintf("chunk %d: skipped %d duplicate records", c.Index, c.Skipped))
	}
}

// HasErrors reports whether any chunk failed.
func (o *Outcome) HasErrors() bool { return len(o.Errors) > 0 }

// Summary is a one-line human readable digest.
func (o *Outcome) Summary() string {
	return fmt.Sprintf("processed %d: %d inserted, %d skipped, %d failed in %s",
		o.TotalProcessed, o.SuccessCount, o.SkippedCount, o.FailedCount, o.Duration.Round(time.Millisecond))
}
