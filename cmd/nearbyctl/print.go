package main

import (
	"fmt"
	"io"

	"github.com/kailas-cloud/nearby/internal/domain/ingest"
	"github.com/kailas-cloud/nearby/internal/domain/report"
)

// maxListed caps how many findings of each severity are printed.
const maxListed = 10

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, item := range items[:min(len(items), maxListed)] {
		fmt.Fprintf(w, "  - %s\n", item)
	}
	if len(items) > maxListed {
		fmt.Fprintf(w, "  ... and %d more\n", len(items)-maxListed)
	}
}

func printReport(w io.Writer, r report.Report) {
	printList(w, "Errors", r.Errors)
	printList(w, "Warnings", r.Warnings)
	if r.Stats != nil {
		printStats(w, *r.Stats, true)
	}
	if r.Valid() {
		fmt.Fprintf(w, "Validation passed with %d warning(s)\n", len(r.Warnings))
	} else {
		fmt.Fprintf(w, "Validation failed: %d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
	}
}

type statRow struct {
	label string
	value int
}

// printStats prints record counts, plus the integrity counters when full is set.
func printStats(w io.Writer, s report.Stats, full bool) {
	rows := []statRow{
		{"postal codes", s.PostalCodes},
		{"locations", s.Locations},
		{"active locations", s.ActiveLocations},
	}
	if full {
		rows = append(rows,
			statRow{"orphan locations", s.Orphans},
			statRow{"unused postal codes", s.UnusedPostalCode},
			statRow{"duplicate groups", s.DuplicateGroups},
		)
	}
	fmt.Fprintln(w, "Stats:")
	for _, row := range rows {
		fmt.Fprintf(w, "  %-20s %d\n", row.label+":", row.value)
	}
}

func printOutcome(w io.Writer, kind string, o ingest.Outcome) {
	fmt.Fprintf(w, "Imported %s: %s\n", kind, o.Summary())
	printList(w, "Errors", o.Errors)
	printList(w, "Warnings", o.Warnings)
}
