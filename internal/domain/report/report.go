// Package report holds the advisory findings produced by dataset validation.
package report

import "fmt"

// DuplicateGroup is a natural key seen more than once.
type DuplicateGroup struct {
	Key   string
	Count int
}

// Stats aggregates counts for a stored-data validation.
type Stats struct {
	PostalCodes      int
	Locations        int
	ActiveLocations  int
	Orphans          int
	UnusedPostalCode int
	DuplicateGroups  int
}

// Report collects errors and warnings. Findings never abort the caller.
type Report struct {
	Errors     []string
	Warnings   []string
	Duplicates []DuplicateGroup
	Stats      *Stats
}

// Errorf appends an error finding.
func (r *Report) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Warnf appends a warning finding.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Valid reports whether there are no errors. Warnings do not count.
func (r *Report) Valid() bool { return len(r.Errors) == 0 }

// Merge appends other's findings.
func (r *Report) Merge(other Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Duplicates = append(r.Duplicates, other.Duplicates...)
}
