package dataset

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/domain/rules"
)

// Validator checks data already in the store.
type Validator struct {
	codes     PostalCodeStore
	locations LocationStore
}

// New creates a stored-data validator.
func New(codes PostalCodeStore, locations LocationStore) *Validator {
	return &Validator{codes: codes, locations: locations}
}

// ValidateStored scans both record kinds and reports orphaned locations
// (errors), unused postal codes (warnings) and stored duplicate natural keys
// (errors). Only a store failure returns an error.
func (v *Validator) ValidateStored(ctx context.Context) (report.Report, error) {
	codes, err := v.codes.List(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("list postal codes: %w", err)
	}
	locations, err := v.locations.List(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("list locations: %w", err)
	}

	var r report.Report
	stats := &report.Stats{PostalCodes: len(codes), Locations: len(locations)}

	known := make(map[string]struct{}, len(codes))
	for _, pc := range codes {
		known[pc.Key()] = struct{}{}
	}

	referenced := make(map[string]struct{}, len(codes))
	keys := newKeyCounter(len(locations))
	for _, p := range locations {
		if p.Active {
			stats.ActiveLocations++
		}
		keys.add(p.Key())

		code, ok := resolveCode(known, p.PostalCode)
		if !ok {
			stats.Orphans++
			r.Errorf("location %s %s references unknown postal code %q",
				p.ID, poi.DescribeKey(p.Key()), p.PostalCode)
			continue
		}
		referenced[code] = struct{}{}
	}

	for _, pc := range codes {
		if _, ok := referenced[pc.Key()]; !ok {
			stats.UnusedPostalCode++
			r.Warnf("postal code %q is not referenced by any location", pc.Key())
		}
	}

	r.Duplicates = keys.duplicates()
	for _, d := range r.Duplicates {
		r.Errorf("stored duplicate location %s occurs %d times", poi.DescribeKey(d.Key), d.Count)
	}
	stats.DuplicateGroups = len(r.Duplicates)
	r.Stats = stats
	return r, nil
}

// Stats returns record counts without scanning for findings.
func (v *Validator) Stats(ctx context.Context) (report.Stats, error) {
	var s report.Stats
	var err error
	if s.PostalCodes, err = v.codes.Count(ctx); err != nil {
		return report.Stats{}, fmt.Errorf("count postal codes: %w", err)
	}
	if s.Locations, err = v.locations.Count(ctx); err != nil {
		return report.Stats{}, fmt.Errorf("count locations: %w", err)
	}
	if s.ActiveLocations, err = v.locations.CountActive(ctx); err != nil {
		return report.Stats{}, fmt.Errorf("count active locations: %w", err)
	}
	return s, nil
}

// resolveCode finds the stored key a location's postal code refers to: the
// exact code, or the 5-digit ZIP of a ZIP+4 that is not stored as such.
func resolveCode(known map[string]struct{}, code string) (string, bool) {
	for _, key := range rules.PostalCodeLookupKeys(code) {
		if _, ok := known[key]; ok {
			return key, true
		}
	}
	return "", false
}
