package search

import (
	"context"

	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

// PostalCodeReader resolves a postal code to its stored centroid.
type PostalCodeReader interface {
	Get(ctx context.Context, code string) (postalcode.PostalCode, bool, error)
}

// LocationReader lists candidate locations.
type LocationReader interface {
	ListActive(ctx context.Context) ([]poi.PointOfInterest, error)
}

// Recorder observes search outcomes. candidates is -1 when ranking did not run.
type Recorder interface {
	ObserveSearch(outcome string, candidates int)
}
