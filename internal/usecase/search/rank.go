package search

import (
	"slices"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/search/result"
)

// Rank orders candidates by distance from origin and keeps the first limit.
// Equal distances keep input order. limit above len(candidates) returns all of
// them; a non-positive limit returns none. The result is never nil.
func Rank(origin geo.Point, candidates []poi.PointOfInterest, limit int) []result.Result {
	if limit <= 0 || len(candidates) == 0 {
		return []result.Result{}
	}

	results := make([]result.Result, len(candidates))
	for i, c := range candidates {
		results[i] = result.New(c, geo.DistanceMiles(origin, c.Point))
	}

	slices.SortStableFunc(results, func(a, b result.Result) int {
		da, db := a.DistanceMiles(), b.DistanceMiles()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
