package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockDatasetCounter struct {
	n      int
	err    error
	called bool
}

func (m *mockDatasetCounter) Count(_ context.Context) (int, error) {
	m.called = true
	return m.n, m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockDatasetCounter{n: 42})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["dataset"] != CheckOK {
		t.Errorf("expected dataset %q, got %q", CheckOK, r.Checks["dataset"])
	}
}

func TestCheck_DBError(t *testing.T) {
	counter := &mockDatasetCounter{n: 42}
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, counter)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if counter.called {
		t.Error("dataset must not be checked when the database is down")
	}
}

func TestCheck_EmptyDataset(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockDatasetCounter{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["dataset"] != CheckEmpty {
		t.Errorf("expected dataset %q, got %q", CheckEmpty, r.Checks["dataset"])
	}
}

func TestCheck_DatasetError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockDatasetCounter{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["dataset"] != CheckError {
		t.Error("expected dataset error")
	}
}

func TestCheck_NoDataset(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["dataset"]; ok {
		t.Error("dataset check should be absent when counter is nil")
	}
}
