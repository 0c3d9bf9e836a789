package dataset

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

// PostalCodeStore lists and counts stored postal codes.
type PostalCodeStore interface {
	List(ctx context.Context) ([]postalcode.PostalCode, error)
	Count(ctx context.Context) (int, error)
}

// LocationStore lists and counts stored points of interest.
type LocationStore interface {
	List(ctx context.Context) ([]poi.PointOfInterest, error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}
