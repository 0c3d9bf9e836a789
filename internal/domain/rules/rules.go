// Package rules holds the stateless format and range predicates shared by search and dataset
// validation. Predicates never fail; the *Message helpers turn a failed predicate into report text.
package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// Field length ceilings.
const (
	MaxNameLength    = 255
	MaxAddressLength = 255
	MaxCityLength    = 100
	MaxRegionLength  = 50
	MaxHoursLength   = 500
)

// IsValidPostalCode reports whether s (trimmed) is a 5-digit ZIP or a ZIP+4 (DDDDD-DDDD).
func IsValidPostalCode(s string) bool {
	s = strings.TrimSpace(s)
	switch len(s) {
	case 5:
		return allDigits(s)
	case 10:
		return allDigits(s[:5]) && s[5] == '-' && allDigits(s[6:])
	default:
		return false
	}
}

// IsValidPhone strips "()-. " and accepts 10 digits, or 11 digits with a leading 1.
func IsValidPhone(s string) bool {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '-', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	digits := b.String()
	if !allDigits(digits) {
		return false
	}
	switch len(digits) {
	case 10:
		return true
	case 11:
		return digits[0] == '1'
	default:
		return false
	}
}

// IsLatitudeInRange reports -90 <= v <= 90.
func IsLatitudeInRange(v float64) bool { return v >= -90 && v <= 90 }

// IsLongitudeInRange reports -180 <= v <= 180.
func IsLongitudeInRange(v float64) bool { return v >= -180 && v <= 180 }

// IsZeroCoordinate reports whether p is exactly (0,0). Callers treat it as a warning only.
func IsZeroCoordinate(p geo.Point) bool { return p.IsZero() }

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

// ExceedsLength reports whether s is longer than limit characters.
func ExceedsLength(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

// NormalizePostalCode trims surrounding whitespace.
func NormalizePostalCode(s string) string { return strings.TrimSpace(s) }

// PostalCodeLookupKeys returns the store keys to try for s, in order: the
// normalized code itself and, for a ZIP+4, its 5-digit ZIP.
func PostalCodeLookupKeys(s string) []string {
	s = NormalizePostalCode(s)
	if len(s) > 5 && IsValidPostalCode(s) {
		return []string{s, s[:5]}
	}
	return []string{s}
}

// PostalCodeMessage describes an invalid postal code.
func PostalCodeMessage(s string) string {
	return fmt.Sprintf("invalid postal code format %q (expected 12345 or 12345-6789)", s)
}

// PhoneMessage describes an invalid phone number.
func PhoneMessage(s string) string {
	return fmt.Sprintf("invalid phone number format %q", s)
}

// CoordinateMessage describes an out-of-range coordinate, or "" when p is in range.
func CoordinateMessage(p geo.Point) string {
	switch {
	case !IsLatitudeInRange(p.Latitude) && !IsLongitudeInRange(p.Longitude):
		return fmt.Sprintf("latitude %v and longitude %v out of range", p.Latitude, p.Longitude)
	case !IsLatitudeInRange(p.Latitude):
		return fmt.Sprintf("latitude %v out of range [-90, 90]", p.Latitude)
	case !IsLongitudeInRange(p.Longitude):
		return fmt.Sprintf("longitude %v out of range [-180, 180]", p.Longitude)
	default:
		return ""
	}
}

// ZeroCoordinateMessage is the warning text for (0,0).
func ZeroCoordinateMessage() string {
	return "coordinates are (0, 0), likely missing data"
}

// LengthMessage describes a field that exceeds its ceiling.
func LengthMessage(field string, limit int) string {
	return fmt.Sprintf("%s exceeds %d characters", field, limit)
}

// RequiredMessage describes a missing required field.
func RequiredMessage(field string) string {
	return field + " is required"
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
