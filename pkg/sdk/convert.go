package nearby

import (
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	domingest "github.com/kailas-cloud/nearby/internal/domain/ingest"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/domain/search/result"
)

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainPoint(p Point) geo.Point { return geo.NewPoint(p.Latitude, p.Longitude) }

func fromDomainPoint(p geo.Point) Point { return Point{Latitude: p.Latitude, Longitude: p.Longitude} }

func toDomainPostalCode(pc PostalCode) postalcode.PostalCode {
	return postalcode.New(pc.Code, toDomainPoint(pc.Point), optional(pc.City), optional(pc.Region))
}

func fromDomainPostalCode(pc postalcode.PostalCode) PostalCode {
	return PostalCode{
		Code:   pc.Code,
		Point:  fromDomainPoint(pc.Point),
		City:   pc.CityName(),
		Region: pc.RegionName(),
	}
}

func toDomainLocation(l Location) poi.PointOfInterest {
	return poi.PointOfInterest{
		Name:       l.Name,
		Address:    l.Address,
		City:       l.City,
		Region:     l.Region,
		PostalCode: l.PostalCode,
		Phone:      optional(l.Phone),
		Hours:      optional(l.Hours),
		Point:      toDomainPoint(l.Point),
		Active:     !l.Inactive,
	}
}

func fromDomainLocation(p poi.PointOfInterest) Location {
	return Location{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		City:       p.City,
		Region:     p.Region,
		PostalCode: p.PostalCode,
		Phone:      deref(p.Phone),
		Hours:      deref(p.Hours),
		Point:      fromDomainPoint(p.Point),
		Inactive:   !p.Active,
		CreatedAt:  p.CreatedAt,
	}
}

func fromDomainResult(r *result.Result) SearchHit {
	return SearchHit{Location: fromDomainLocation(r.Location()), DistanceMiles: r.DistanceMiles()}
}

func fromDomainOutcome(o domingest.Outcome) ImportResult {
	return ImportResult{
		Processed: o.TotalProcessed,
		Inserted:  o.SuccessCount,
		Skipped:   o.SkippedCount,
		Failed:    o.FailedCount,
		Duration:  o.Duration,
		Errors:    o.Errors,
		Warnings:  o.Warnings,
	}
}

func fromDomainStats(s report.Stats) Stats {
	return Stats{
		PostalCodes:       s.PostalCodes,
		Locations:         s.Locations,
		ActiveLocations:   s.ActiveLocations,
		Orphans:           s.Orphans,
		UnusedPostalCodes: s.UnusedPostalCode,
		DuplicateGroups:   s.DuplicateGroups,
	}
}

func fromDomainReport(r report.Report) Report {
	out := Report{Errors: r.Errors, Warnings: r.Warnings}
	for _, d := range r.Duplicates {
		out.Duplicates = append(out.Duplicates, Duplicate{Key: d.Key, Count: d.Count})
	}
	if r.Stats != nil {
		st := fromDomainStats(*r.Stats)
		out.Stats = &st
	}
	return out
}
