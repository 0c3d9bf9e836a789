package postalcode

import (
	"testing"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

func ptr(s string) *string { return &s }

func TestNew_TrimsCode(t *testing.T) {
	p := New("  10001 ", geo.NewPoint(40.75, -73.99), nil, nil)
	if p.Code != "10001" || p.Key() != "10001" {
		t.Fatalf("expected trimmed code, got %q / %q", p.Code, p.Key())
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		city, region *string
		want         string
	}{
		{ptr("New York"), ptr("NY"), "New York, NY"},
		{ptr("New York"), nil, "New York"},
		{nil, ptr("NY"), "NY"},
		{nil, nil, ""},
	}
	for _, tc := range tests {
		p := New("10001", geo.Point{}, tc.city, tc.region)
		if got := p.Place(); got != tc.want {
			t.Errorf("Place() = %q, want %q", got, tc.want)
		}
	}
}
