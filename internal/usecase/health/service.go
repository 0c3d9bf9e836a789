package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers but searches cannot succeed (no dataset loaded).
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckEmpty indicates a reachable but empty dataset.
	CheckEmpty CheckResult = "empty"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// defaultCheckTimeout bounds each component check.
const defaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	dataset DatasetCounter
	timeout time.Duration
}

// New creates a Service. dataset can be nil.
func New(db DBPinger, dataset DatasetCounter) *Service {
	return &Service{db: db, dataset: dataset, timeout: defaultCheckTimeout}
}

// Check pings the database and, when it is up, checks that postal codes are loaded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.dataset != nil {
		countCtx, cancelCount := context.WithTimeout(ctx, s.timeout)
		defer cancelCount()
		n, err := s.dataset.Count(countCtx)
		switch {
		case err != nil:
			checks["dataset"] = CheckError
			status = Degraded
		case n == 0:
			checks["dataset"] = CheckEmpty
			status = Degraded
		default:
			checks["dataset"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
