package result

import "github.com/kailas-cloud/nearby/internal/domain/poi"

// Result is a ranked location with its distance from the search origin.
type Result struct {
	location      poi.PointOfInterest
	distanceMiles float64
}

// New creates a search result.
func New(location poi.PointOfInterest, distanceMiles float64) Result {
	return Result{location: location, distanceMiles: distanceMiles}
}

// Location returns the matched point of interest.
func (r *Result) Location() poi.PointOfInterest { return r.location }

// ID returns the location identifier.
func (r *Result) ID() string { return r.location.ID }

// Name returns the location name.
func (r *Result) Name() string { return r.location.Name }

// DistanceMiles returns the great-circle distance from the origin.
func (r *Result) DistanceMiles() float64 { return r.distanceMiles }
