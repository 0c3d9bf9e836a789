package app

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/config"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	repos := NewRepositories(store, "test:")
	ctx := context.Background()
	pc := postalcode.New("10001", geo.NewPoint(40.75, -73.99), nil, nil)
	if err := repos.PostalCodes.BulkInsert(ctx, []postalcode.PostalCode{pc}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	n, err := repos.PostalCodes.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("count: got %d, %v", n, err)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	if _, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "mongo"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
