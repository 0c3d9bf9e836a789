package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

// --- Mocks ---

type mockCodes struct {
	items []postalcode.PostalCode
	err   error
}

func (m *mockCodes) List(context.Context) ([]postalcode.PostalCode, error) { return m.items, m.err }
func (m *mockCodes) Count(context.Context) (int, error)                   { return len(m.items), m.err }

type mockLocations struct {
	items []poi.PointOfInterest
	err   error
}

func (m *mockLocations) List(context.Context) ([]poi.PointOfInterest, error) { return m.items, m.err }
func (m *mockLocations) Count(context.Context) (int, error)                  { return len(m.items), m.err }

func (m *mockLocations) CountActive(context.Context) (int, error) {
	n := 0
	for _, p := range m.items {
		if p.Active {
			n++
		}
	}
	return n, m.err
}

func storedFixture() (*mockCodes, *mockLocations) {
	codes := &mockCodes{items: []postalcode.PostalCode{
		postalcode.New("10001", geo.NewPoint(40.7505, -73.9965), nil, nil),
		postalcode.New("60601", geo.NewPoint(41.8858, -87.6181), nil, nil),
	}}

	a := location("A", "1 Main St")
	a.ID = "id-a"
	b := location("B", "2 Main St")
	b.ID, b.PostalCode, b.Active = "id-b", "10001-1234", false
	orphan := location("C", "3 Main St")
	orphan.ID, orphan.PostalCode = "id-c", "99999"
	dup := location("A", "1 Main St")
	dup.ID = "id-d"

	return codes, &mockLocations{items: []poi.PointOfInterest{a, b, orphan, dup}}
}

func TestValidateStored(t *testing.T) {
	codes, locs := storedFixture()
	r, err := New(codes, locs).ValidateStored(context.Background())
	require.NoError(t, err)

	joined := strings.Join(r.Errors, "\n")
	assert.Contains(t, joined, `location id-c (name="C", address="3 Main St") references unknown postal code "99999"`)
	assert.Contains(t, joined, `stored duplicate location (name="A", address="1 Main St") occurs 2 times`)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], `postal code "60601"`)

	require.NotNil(t, r.Stats)
	assert.Equal(t, 2, r.Stats.PostalCodes)
	assert.Equal(t, 4, r.Stats.Locations)
	assert.Equal(t, 3, r.Stats.ActiveLocations)
	assert.Equal(t, 1, r.Stats.Orphans)
	assert.Equal(t, 1, r.Stats.UnusedPostalCode)
	assert.Equal(t, 1, r.Stats.DuplicateGroups)
}

func TestValidateStored_ZipPlus4Key(t *testing.T) {
	codes := &mockCodes{items: []postalcode.PostalCode{
		postalcode.New("10001-1234", geo.NewPoint(40.7505, -73.9965), nil, nil),
	}}
	loc := location("A", "1 Main St")
	loc.ID, loc.PostalCode = "id-a", "10001-1234"

	r, err := New(codes, &mockLocations{items: []poi.PointOfInterest{loc}}).
		ValidateStored(context.Background())
	require.NoError(t, err)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, 0, r.Stats.Orphans)
	assert.Equal(t, 0, r.Stats.UnusedPostalCode)
}

func TestValidateStored_StoreError(t *testing.T) {
	codes, locs := storedFixture()
	locs.err = domain.StoreError("smembers", errors.New("timeout"))

	_, err := New(codes, locs).ValidateStored(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestStats(t *testing.T) {
	codes, locs := storedFixture()
	s, err := New(codes, locs).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.PostalCodes)
	assert.Equal(t, 4, s.Locations)
	assert.Equal(t, 3, s.ActiveLocations)
}
