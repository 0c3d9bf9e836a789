package postalcode

import (
	"context"
	"testing"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/db/memory"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

const testPrefix = "nearby:"

// faultyStore wraps the in-memory store and fails selected operations.
type faultyStore struct {
	*memory.Store
	hsetMultiErr error
	hgetAllErr   error
	membersErr   error
}

func (f *faultyStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if f.hsetMultiErr != nil {
		return f.hsetMultiErr
	}
	return f.Store.HSetMulti(ctx, items)
}

func (f *faultyStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if f.hgetAllErr != nil {
		return nil, f.hgetAllErr
	}
	return f.Store.HGetAll(ctx, key)
}

func (f *faultyStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.Store.SMembers(ctx, key)
}

func newTestRepo(t *testing.T) (*Repo, *faultyStore) {
	t.Helper()
	fs := &faultyStore{Store: memory.NewStore()}
	return New(fs, testPrefix), fs
}

func ptr(s string) *string { return &s }

func testCodes() []postalcode.PostalCode {
	return []postalcode.PostalCode{
		postalcode.New("10001", geo.NewPoint(40.7505, -73.9965), ptr("New York"), ptr("NY")),
		postalcode.New("90210", geo.NewPoint(34.0901, -118.4065), ptr("Beverly Hills"), nil),
	}
}
