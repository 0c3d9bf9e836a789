package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	HashStore
	SetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) (int, error)
}

// SetStore provides set operations. Sets hold the key indexes that make
// enumeration and uniqueness checks possible without SCAN.
type SetStore interface {
	// SAdd adds members and returns how many were new.
	SAdd(ctx context.Context, key string, members ...string) (int, error)
	// SAddEach adds every member in its own pipelined command and reports, per
	// member, whether this call added it. Used to claim natural keys. On error
	// the returned flags still mark the members that were added.
	SAddEach(ctx context.Context, key string, members []string) ([]bool, error)
	SRem(ctx context.Context, key string, members ...string) (int, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SMIsMember(ctx context.Context, key string, members []string) ([]bool, error)
	SCard(ctx context.Context, key string) (int, error)
}
