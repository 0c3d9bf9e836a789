package nearby

import (
	"context"

	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
)

// Health statuses, as served by GET /health.
const (
	HealthOK       = string(healthuc.Healthy)
	HealthDegraded = string(healthuc.Degraded)
	HealthError    = string(healthuc.Unhealthy)
)

// HealthStatus is the store and dataset state seen by the client.
type HealthStatus struct {
	Status string            // HealthOK, HealthDegraded or HealthError
	Checks map[string]string // "database", "dataset" -> ok, empty, error
}

// Searchable reports whether a search can currently find an origin: the store
// answers and postal codes are loaded.
func (h HealthStatus) Searchable() bool {
	return h.Status == HealthOK
}

// Health pings the store and counts loaded postal codes.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
