// Package postalcode defines the PostalCode aggregate: a postal code resolved to a coordinate.
package postalcode

import (
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// PostalCode maps a code to its centroid. City and Region are optional.
type PostalCode struct {
	Code   string    `json:"code"`
	Point  geo.Point `json:"point"`
	City   *string   `json:"city,omitempty"`
	Region *string   `json:"region,omitempty"`
}

// New builds a PostalCode with the code trimmed.
func New(code string, point geo.Point, city, region *string) PostalCode {
	return PostalCode{
		Code:   strings.TrimSpace(code),
		Point:  point,
		City:   city,
		Region: region,
	}
}

// Key returns the natural key used for dedup and storage.
func (p PostalCode) Key() string { return strings.TrimSpace(p.Code) }

// CityName returns the city or "".
func (p PostalCode) CityName() string { return deref(p.City) }

// RegionName returns the region or "".
func (p PostalCode) RegionName() string { return deref(p.Region) }

// Place renders "City, RG" with whatever parts are present.
func (p PostalCode) Place() string {
	city, region := p.CityName(), p.RegionName()
	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	default:
		return region
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
