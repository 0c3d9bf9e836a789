package poi

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/repository/keyset"
)

// fetchChunk bounds keys per HGETALL pipeline.
const fetchChunk = 500

// store is the consumer interface for points of interest (ISP).
//
//nolint:interfacebloat // repo needs hash + set operations
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) (int, error)
	SAdd(ctx context.Context, key string, members ...string) (int, error)
	SAddEach(ctx context.Context, key string, members []string) ([]bool, error)
	SRem(ctx context.Context, key string, members ...string) (int, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SMIsMember(ctx context.Context, key string, members []string) ([]bool, error)
	SCard(ctx context.Context, key string) (int, error)
}

// Repo stores points of interest as hashes under <prefix>poi:<id>. The set
// <prefix>pois indexes ids; <prefix>poi:keys holds natural keys and is the
// uniqueness constraint on (name, address).
type Repo struct {
	store  store
	prefix string
	now    func() time.Time
	newID  func() string
}

// New creates a point of interest repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix, now: time.Now, newID: uuid.NewString}
}

func (r *Repo) recordKey(id string) string { return r.prefix + "poi:" + id }
func (r *Repo) indexKey() string           { return r.prefix + "pois" }
func (r *Repo) naturalKeysKey() string     { return r.prefix + "poi:keys" }

// List returns every stored point of interest ordered by creation time, then id.
func (r *Repo) List(ctx context.Context) ([]poi.PointOfInterest, error) {
	ids, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return nil, domain.StoreError("smembers locations", err)
	}

	out := make([]poi.PointOfInterest, 0, len(ids))
	for chunk := range slices.Chunk(ids, fetchChunk) {
		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = r.recordKey(id)
		}
		rows, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return nil, domain.StoreError("hgetall multi locations", err)
		}
		for i, m := range rows {
			if len(m) == 0 {
				continue
			}
			p, err := fromHash(m)
			if err != nil {
				return nil, fmt.Errorf("parse location %s: %w", chunk[i], err)
			}
			out = append(out, p)
		}
	}

	slices.SortFunc(out, func(a, b poi.PointOfInterest) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// ListActive returns the points of interest with Active set, in List order.
func (r *Repo) ListActive(ctx context.Context) ([]poi.PointOfInterest, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(p poi.PointOfInterest) bool { return !p.Active }), nil
}

// ExistingKeys returns the subset of natural keys already stored.
func (r *Repo) ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(keys) == 0 {
		return existing, nil
	}
	flags, err := r.store.SMIsMember(ctx, r.naturalKeysKey(), keys)
	if err != nil {
		return nil, domain.StoreError("smismember location keys", err)
	}
	for i, ok := range flags {
		if ok {
			existing[keys[i]] = struct{}{}
		}
	}
	return existing, nil
}

// BulkInsert stores records whose natural keys must not exist yet. Each record
// gets a fresh id and, when unset, a creation time. A natural key claimed by a
// concurrent writer fails the whole call with an error wrapping db.ErrKeyExists.
func (r *Repo) BulkInsert(ctx context.Context, records []poi.PointOfInterest) error {
	if len(records) == 0 {
		return nil
	}

	now := r.now().UTC()
	natKeys := make([]string, len(records))
	ids := make([]string, len(records))
	items := make([]db.HashSetItem, len(records))
	for i, p := range records {
		p.ID = r.newID()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		natKeys[i] = p.Key()
		ids[i] = p.ID
		items[i] = db.HashSetItem{Key: r.recordKey(p.ID), Fields: toHash(p)}
	}

	if err := keyset.Claim(ctx, r.store, r.naturalKeysKey(), natKeys); err != nil {
		return domain.StoreError("claim location keys", err)
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		relErr := keyset.Release(ctx, r.store, r.naturalKeysKey(), natKeys)
		return domain.StoreError("hset locations", errors.Join(err, relErr))
	}
	if _, err := r.store.SAdd(ctx, r.indexKey(), ids...); err != nil {
		keys := make([]string, len(items))
		for i, it := range items {
			keys[i] = it.Key
		}
		_, delErr := r.store.Del(ctx, keys...)
		relErr := keyset.Release(ctx, r.store, r.naturalKeysKey(), natKeys)
		return domain.StoreError("index locations", errors.Join(err, delErr, relErr))
	}
	return nil
}

// DeleteAll removes every point of interest and returns how many were indexed.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	ids, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return 0, domain.StoreError("smembers locations", err)
	}
	for chunk := range slices.Chunk(ids, fetchChunk) {
		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = r.recordKey(id)
		}
		if _, err := r.store.Del(ctx, keys...); err != nil {
			return 0, domain.StoreError("del locations", err)
		}
	}
	if _, err := r.store.Del(ctx, r.indexKey(), r.naturalKeysKey()); err != nil {
		return 0, domain.StoreError("del location indexes", err)
	}
	return len(ids), nil
}

// Count returns the number of stored points of interest.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, r.indexKey())
	if err != nil {
		return 0, domain.StoreError("scard locations", err)
	}
	return n, nil
}

// CountActive returns the number of active points of interest.
func (r *Repo) CountActive(ctx context.Context) (int, error) {
	active, err := r.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}
