package postalcode

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

func TestBulkInsert_ThenGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.BulkInsert(ctx, testCodes()); err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}

	pc, found, err := repo.Get(ctx, "10001")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if pc.Point.Latitude != 40.7505 || pc.Point.Longitude != -73.9965 {
		t.Errorf("unexpected point: %+v", pc.Point)
	}
	if pc.Place() != "New York, NY" {
		t.Errorf("Place() = %q", pc.Place())
	}

	bh, _, _ := repo.Get(ctx, "90210")
	if bh.Region != nil {
		t.Errorf("absent region must stay nil, got %q", *bh.Region)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, found, err := repo.Get(context.Background(), "00000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false")
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, fs := newTestRepo(t)
	fs.hgetAllErr = errors.New("connection refused")

	_, _, err := repo.Get(context.Background(), "10001")
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestBulkInsert_ConflictWritesNothing(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	codes := testCodes()

	if err := repo.BulkInsert(ctx, codes[:1]); err != nil {
		t.Fatal(err)
	}
	err := repo.BulkInsert(ctx, codes)
	if !errors.Is(err, db.ErrKeyExists) || !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrKeyExists wrapped as store error, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
	if _, found, _ := repo.Get(ctx, "90210"); found {
		t.Error("90210 must not be written after a conflict")
	}
}

func TestBulkInsert_WriteFailureReleasesClaims(t *testing.T) {
	repo, fs := newTestRepo(t)
	ctx := context.Background()
	fs.hsetMultiErr = errors.New("OOM")

	if err := repo.BulkInsert(ctx, testCodes()); err == nil {
		t.Fatal("expected error")
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("claims leaked: Count = %d", n)
	}

	fs.hsetMultiErr = nil
	if err := repo.BulkInsert(ctx, testCodes()); err != nil {
		t.Fatalf("retry after release: %v", err)
	}
}

func TestExistingKeys(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	_ = repo.BulkInsert(ctx, testCodes())

	got, err := repo.ExistingKeys(ctx, []string{"10001", "60601"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["10001"]; !ok || len(got) != 1 {
		t.Errorf("ExistingKeys = %v", got)
	}
}

func TestList_SortedByCode(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	codes := testCodes()
	_ = repo.BulkInsert(ctx, []postalcode.PostalCode{codes[1], codes[0]})

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Code != "10001" || list[1].Code != "90210" {
		t.Errorf("List = %+v", list)
	}
}

func TestList_StoreError(t *testing.T) {
	repo, fs := newTestRepo(t)
	fs.membersErr = errors.New("timeout")
	if _, err := repo.List(context.Background()); domain.KindOf(err) != domain.KindStore {
		t.Fatalf("expected store kind, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	_ = repo.BulkInsert(ctx, testCodes())

	n, err := repo.DeleteAll(ctx)
	if err != nil || n != 2 {
		t.Fatalf("DeleteAll = %d, %v", n, err)
	}
	if c, _ := repo.Count(ctx); c != 0 {
		t.Errorf("Count after DeleteAll = %d", c)
	}
	if _, found, _ := repo.Get(ctx, "10001"); found {
		t.Error("record survived DeleteAll")
	}
}
