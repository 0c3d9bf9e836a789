package poi

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/db/memory"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
)

const testPrefix = "nearby:"

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// faultyStore wraps the in-memory store and fails selected operations.
type faultyStore struct {
	*memory.Store
	hsetMultiErr error
	saddErr      error
	smembersErr  error
}

func (f *faultyStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if f.hsetMultiErr != nil {
		return f.hsetMultiErr
	}
	return f.Store.HSetMulti(ctx, items)
}

func (f *faultyStore) SAdd(ctx context.Context, key string, members ...string) (int, error) {
	if f.saddErr != nil {
		return 0, f.saddErr
	}
	return f.Store.SAdd(ctx, key, members...)
}

func (f *faultyStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if f.smembersErr != nil {
		return nil, f.smembersErr
	}
	return f.Store.SMembers(ctx, key)
}

func newTestRepo(t *testing.T) (*Repo, *faultyStore) {
	t.Helper()
	fs := &faultyStore{Store: memory.NewStore()}
	repo := New(fs, testPrefix)
	repo.now = func() time.Time { return testNow }
	seq := 0
	repo.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	return repo, fs
}

func ptr(s string) *string { return &s }

func testLocation(name, address string, active bool) poi.PointOfInterest {
	return poi.PointOfInterest{
		Name:       name,
		Address:    address,
		City:       "New York",
		Region:     "NY",
		PostalCode: "10001",
		Phone:      ptr("(212) 555-0100"),
		Point:      geo.NewPoint(40.7505, -73.9965),
		Active:     active,
	}
}
