// Package poi defines the PointOfInterest aggregate (a predefined location searchable by proximity).
package poi

import (
	"strings"
	"time"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// keySeparator joins name and address in the natural key (ASCII unit separator).
const keySeparator = "\x1f"

// PointOfInterest is a searchable location. ID is assigned by storage on insert.
type PointOfInterest struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Region     string    `json:"region"`
	PostalCode string    `json:"postalCode"`
	Phone      *string   `json:"phone,omitempty"`
	Point      geo.Point `json:"point"`
	Hours      *string   `json:"hours,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NaturalKey serializes (name, address) for application-level dedup.
func NaturalKey(name, address string) string {
	return strings.TrimSpace(name) + keySeparator + strings.TrimSpace(address)
}

// SplitNaturalKey reverses NaturalKey.
func SplitNaturalKey(key string) (name, address string) {
	name, address, _ = strings.Cut(key, keySeparator)
	return name, address
}

// DescribeKey renders a natural key for reports.
func DescribeKey(key string) string {
	name, address := SplitNaturalKey(key)
	return "(name=" + strquote(name) + ", address=" + strquote(address) + ")"
}

// Key returns the natural key of p.
func (p PointOfInterest) Key() string { return NaturalKey(p.Name, p.Address) }

// PhoneNumber returns the phone or "".
func (p PointOfInterest) PhoneNumber() string {
	if p.Phone == nil {
		return ""
	}
	return *p.Phone
}

// OpeningHours returns the hours or "".
func (p PointOfInterest) OpeningHours() string {
	if p.Hours == nil {
		return ""
	}
	return *p.Hours
}

func strquote(s string) string { return `"` + s + `"` }
