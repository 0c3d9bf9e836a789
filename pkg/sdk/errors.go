package nearby

import "github.com/kailas-cloud/nearby/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation = domain.ErrValidation
	ErrNotFound   = domain.ErrNotFound
	ErrStore      = domain.ErrStore
)
