package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

func TestIsValidPostalCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10001", true},
		{"10001-1234", true},
		{"  10001  ", true},
		{"\t90210-0001\n", true},
		{"1234", false},
		{"123456", false},
		{"abcde", false},
		{"abc12", false},
		{"", false},
		{"     ", false},
		{"10001 1234", false},
		{"10001-123", false},
		{"1000a-1234", false},
		{"10001-12a4", false},
		{"１0001", false}, // full-width digit
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidPostalCode(tc.in), "IsValidPostalCode(%q)", tc.in)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"(212) 555-0100", true},
		{"212.555.0100", true},
		{"2125550100", true},
		{"1-212-555-0100", true},
		{"+1 212 555 0100", false},
		{"2-212-555-0100", false},
		{"555-0100", false},
		{"", false},
		{"212-555-01OO", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsValidPhone(tc.in), "IsValidPhone(%q)", tc.in)
	}
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsLatitudeInRange(90))
	assert.True(t, IsLatitudeInRange(-90))
	assert.False(t, IsLatitudeInRange(90.0001))
	assert.True(t, IsLongitudeInRange(-180))
	assert.True(t, IsLongitudeInRange(180))
	assert.False(t, IsLongitudeInRange(-180.5))
}

func TestIsZeroCoordinate(t *testing.T) {
	assert.True(t, IsZeroCoordinate(geo.Point{}))
	assert.False(t, IsZeroCoordinate(geo.NewPoint(0, 0.5)))
}

func TestExceedsLength_CountsRunes(t *testing.T) {
	assert.False(t, ExceedsLength(strings.Repeat("é", MaxCityLength), MaxCityLength))
	assert.True(t, ExceedsLength(strings.Repeat("a", MaxCityLength+1), MaxCityLength))
}

func TestCoordinateMessage(t *testing.T) {
	assert.Empty(t, CoordinateMessage(geo.NewPoint(40, -73)))
	assert.Contains(t, CoordinateMessage(geo.NewPoint(91, -73)), "latitude 91")
	assert.Contains(t, CoordinateMessage(geo.NewPoint(40, 200)), "longitude 200")
	assert.Contains(t, CoordinateMessage(geo.NewPoint(-95, 200)), "latitude -95 and longitude 200")
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(" \t "))
	assert.False(t, IsBlank(" x "))
}

func TestPostalCodeLookupKeys(t *testing.T) {
	assert.Equal(t, []string{"10001"}, PostalCodeLookupKeys(" 10001 "))
	assert.Equal(t, []string{"10001-1234", "10001"}, PostalCodeLookupKeys("10001-1234"))
	// invalid input is looked up as-is and simply misses
	assert.Equal(t, []string{"1000-12345"}, PostalCodeLookupKeys("1000-12345"))
}
