package postalcode

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/repository/keyset"
)

// fetchChunk bounds keys per HGETALL pipeline.
const fetchChunk = 500

// store is the consumer interface for postal codes (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) (int, error)
	SAddEach(ctx context.Context, key string, members []string) ([]bool, error)
	SRem(ctx context.Context, key string, members ...string) (int, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SMIsMember(ctx context.Context, key string, members []string) ([]bool, error)
	SCard(ctx context.Context, key string) (int, error)
}

// Repo stores postal codes as hashes under <prefix>zip:<code>, indexed by the
// set <prefix>zips. The index set doubles as the uniqueness constraint on code.
type Repo struct {
	store  store
	prefix string
}

// New creates a postal code repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) recordKey(code string) string { return r.prefix + "zip:" + code }
func (r *Repo) indexKey() string             { return r.prefix + "zips" }

// Get looks up a postal code by its key. found is false when it is not stored.
func (r *Repo) Get(ctx context.Context, code string) (postalcode.PostalCode, bool, error) {
	m, err := r.store.HGetAll(ctx, r.recordKey(code))
	if err != nil {
		return postalcode.PostalCode{}, false, domain.StoreError("hgetall postal code "+code, err)
	}
	if len(m) == 0 {
		return postalcode.PostalCode{}, false, nil
	}
	pc, err := fromHash(m)
	if err != nil {
		return postalcode.PostalCode{}, false, fmt.Errorf("parse postal code %s: %w", code, err)
	}
	return pc, true, nil
}

// List returns every stored postal code ordered by code.
func (r *Repo) List(ctx context.Context) ([]postalcode.PostalCode, error) {
	codes, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return nil, domain.StoreError("smembers postal codes", err)
	}
	slices.Sort(codes)

	out := make([]postalcode.PostalCode, 0, len(codes))
	for chunk := range slices.Chunk(codes, fetchChunk) {
		keys := make([]string, len(chunk))
		for i, c := range chunk {
			keys[i] = r.recordKey(c)
		}
		rows, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return nil, domain.StoreError("hgetall multi postal codes", err)
		}
		for i, m := range rows {
			// claimed but not yet written, or removed concurrently
			if len(m) == 0 {
				continue
			}
			pc, err := fromHash(m)
			if err != nil {
				return nil, fmt.Errorf("parse postal code %s: %w", chunk[i], err)
			}
			out = append(out, pc)
		}
	}
	return out, nil
}

// ExistingKeys returns the subset of codes already stored.
func (r *Repo) ExistingKeys(ctx context.Context, codes []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	if len(codes) == 0 {
		return existing, nil
	}
	flags, err := r.store.SMIsMember(ctx, r.indexKey(), codes)
	if err != nil {
		return nil, domain.StoreError("smismember postal codes", err)
	}
	for i, ok := range flags {
		if ok {
			existing[codes[i]] = struct{}{}
		}
	}
	return existing, nil
}

// BulkInsert stores records whose codes must not exist yet. A code claimed by
// a concurrent writer fails the whole call with an error wrapping
// db.ErrKeyExists and nothing is written.
func (r *Repo) BulkInsert(ctx context.Context, records []postalcode.PostalCode) error {
	if len(records) == 0 {
		return nil
	}

	codes := make([]string, len(records))
	items := make([]db.HashSetItem, len(records))
	for i, pc := range records {
		codes[i] = pc.Key()
		items[i] = db.HashSetItem{Key: r.recordKey(pc.Key()), Fields: toHash(pc)}
	}

	if err := keyset.Claim(ctx, r.store, r.indexKey(), codes); err != nil {
		return domain.StoreError("claim postal codes", err)
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		relErr := keyset.Release(ctx, r.store, r.indexKey(), codes)
		return domain.StoreError("hset postal codes", errors.Join(err, relErr))
	}
	return nil
}

// DeleteAll removes every postal code and returns how many were indexed.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	codes, err := r.store.SMembers(ctx, r.indexKey())
	if err != nil {
		return 0, domain.StoreError("smembers postal codes", err)
	}
	for chunk := range slices.Chunk(codes, fetchChunk) {
		keys := make([]string, len(chunk))
		for i, c := range chunk {
			keys[i] = r.recordKey(c)
		}
		if _, err := r.store.Del(ctx, keys...); err != nil {
			return 0, domain.StoreError("del postal codes", err)
		}
	}
	if _, err := r.store.Del(ctx, r.indexKey()); err != nil {
		return 0, domain.StoreError("del postal code index", err)
	}
	return len(codes), nil
}

// Count returns the number of stored postal codes.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, r.indexKey())
	if err != nil {
		return 0, domain.StoreError("scard postal codes", err)
	}
	return n, nil
}
