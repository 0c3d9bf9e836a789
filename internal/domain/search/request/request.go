package request

import (
	"fmt"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/rules"
)

// Search limit defaults.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Limits configures the default and ceiling applied to a search limit.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns default=10, max=100.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// normalized fills non-positive settings and keeps Default within Max.
func (l Limits) normalized() Limits {
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if l.Default <= 0 {
		l.Default = DefaultLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// Request is a validated proximity search query.
type Request struct {
	postalCode string
	limit      int
}

// New validates a raw query. A nil limit takes the default; an explicit limit must lie in [1, Max].
func New(postalCode string, limit *int, limits Limits) (Request, error) {
	limits = limits.normalized()

	code := rules.NormalizePostalCode(postalCode)
	if code == "" {
		return Request{}, domain.NewValidationError("postalCode", "is required")
	}
	if !rules.IsValidPostalCode(code) {
		return Request{}, domain.NewValidationError("postalCode", rules.PostalCodeMessage(code))
	}

	n := limits.Default
	if limit != nil {
		n = *limit
		if n < 1 || n > limits.Max {
			return Request{}, domain.NewValidationError(
				"limit", fmt.Sprintf("must be between 1 and %d, got %d", limits.Max, n),
			)
		}
	}

	return Request{postalCode: code, limit: n}, nil
}

// PostalCode returns the trimmed origin postal code.
func (r *Request) PostalCode() string { return r.postalCode }

// LookupKeys returns the keys that may hold the origin, exact code first.
// A ZIP+4 stored as such wins over its 5-digit ZIP.
func (r *Request) LookupKeys() []string {
	return rules.PostalCodeLookupKeys(r.postalCode)
}

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }
