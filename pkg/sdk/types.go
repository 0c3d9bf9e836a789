package nearby

import "time"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// PostalCode maps a code to its centroid. Empty City/Region mean unknown.
type PostalCode struct {
	Code   string
	Point  Point
	City   string
	Region string
}

// Location is a searchable point of interest. ID and CreatedAt are assigned on import.
type Location struct {
	ID         string
	Name       string
	Address    string
	City       string
	Region     string
	PostalCode string
	Phone      string
	Hours      string
	Point      Point
	Inactive   bool // zero value imports the location as active
	CreatedAt  time.Time
}

// SearchHit is one ranked location.
type SearchHit struct {
	Location      Location
	DistanceMiles float64
}

// SearchResponse is the outcome of a proximity search.
type SearchResponse struct {
	Origin  PostalCode
	Results []SearchHit
	Message string
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Processed int
	Inserted  int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Errors    []string
	Warnings  []string
}

// Duplicate is a natural key seen more than once.
type Duplicate struct {
	Key   string
	Count int
}

// Stats holds record counts. The integrity counters are only filled by ValidateStored.
type Stats struct {
	PostalCodes       int
	Locations         int
	ActiveLocations   int
	Orphans           int
	UnusedPostalCodes int
	DuplicateGroups   int
}

// Report holds advisory validation findings. Valid reports whether Errors is empty.
type Report struct {
	Errors     []string
	Warnings   []string
	Duplicates []Duplicate
	Stats      *Stats
}

// Valid reports whether the report has no errors.
func (r Report) Valid() bool { return len(r.Errors) == 0 }
