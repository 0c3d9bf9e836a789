package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPostalCodesJSON(t *testing.T) {
	in := `[
		{"code": "10001", "latitude": 40.7505, "longitude": -73.9965, "city": "New York", "region": "NY"},
		{"zipCode": " 90210 ", "latitude": 34.09, "longitude": -118.41, "state": "CA"},
		{"code": "60601", "latitude": "41.88", "longitude": -87.62},
		{"code": "73301", "longitude": -97.74},
		"not an object"
	]`

	codes, rep, err := ReadPostalCodesJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, "10001", codes[0].Code)
	assert.Equal(t, "New York, NY", codes[0].Place())
	assert.Equal(t, "90210", codes[1].Code)
	assert.Nil(t, codes[1].City)
	assert.Equal(t, "CA", codes[1].RegionName())

	require.Len(t, rep.Errors, 3)
	assert.Contains(t, rep.Errors[0], "record 3")
	assert.Contains(t, rep.Errors[0], `"latitude"`)
	assert.Equal(t, "record 4: latitude is required", rep.Errors[1])
	assert.Contains(t, rep.Errors[2], "record 5")
}

func TestReadPostalCodesJSON_Empty(t *testing.T) {
	codes, rep, err := ReadPostalCodesJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, codes)
	assert.True(t, rep.Valid())

	codes, _, err = ReadPostalCodesJSON(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestReadPostalCodesJSON_NotAnArray(t *testing.T) {
	_, _, err := ReadPostalCodesJSON(strings.NewReader(`{"code": "10001"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON array")
}

func TestReadPostalCodesJSON_Truncated(t *testing.T) {
	codes, _, err := ReadPostalCodesJSON(strings.NewReader(
		`[{"code": "10001", "latitude": 1, "longitude": 2}, {"code": "1000`))
	require.Error(t, err)
	assert.Len(t, codes, 1)
}

func TestReadLocationsJSON(t *testing.T) {
	in := `[
		{"name": "Downtown Office", "address": "1 Main St", "city": "New York", "state": "NY",
		 "zipCode": "10001", "phone": "(212) 555-0100", "latitude": 40.7505, "longitude": -73.9965},
		{"name": "Closed Branch", "address": "2 Side St", "city": "Chicago", "region": "IL",
		 "postalCode": "60601", "latitude": 41.88, "longitude": -87.62, "active": false, "hours": " "},
		{"name": "Broken", "latitude": 1, "longitude": 2, "active": "yes"}
	]`

	locs, rep, err := ReadLocationsJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, locs, 2)

	first := locs[0]
	assert.Equal(t, "Downtown Office", first.Name)
	assert.Equal(t, "NY", first.Region)
	assert.Equal(t, "10001", first.PostalCode)
	assert.Equal(t, "(212) 555-0100", first.PhoneNumber())
	assert.True(t, first.Active)
	assert.Nil(t, first.Hours)

	assert.False(t, locs[1].Active)
	assert.Equal(t, "IL", locs[1].Region)
	assert.Nil(t, locs[1].Hours)

	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "record 3")
}

func TestReadGeoNames(t *testing.T) {
	in := strings.Join([]string{
		"US\t10001\tNew York\tNew York\tNY\tNew York\t061\t\t\t40.7484\t-73.9967\t4",
		"US\t99501\tAnchorage\tAlaska\tAK\tAnchorage\t020\t\t\t61.2211\t-149.8684\t",
		"US\t00000\tNowhere\tNone\tXX\t\t\t\t\tnorth\t-1\t1",
		"US\tshort\trow",
	}, "\n")

	codes, rep, err := ReadGeoNames(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, "10001", codes[0].Code)
	assert.Equal(t, "New York, NY", codes[0].Place())
	assert.InDelta(t, 40.7484, codes[0].Point.Latitude, 1e-9)
	assert.InDelta(t, -149.8684, codes[1].Point.Longitude, 1e-9)

	require.Len(t, rep.Errors, 2)
	assert.Equal(t, `line 3: invalid latitude "north"`, rep.Errors[0])
	assert.Contains(t, rep.Errors[1], "line 4: expected 12 fields")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("data/zips.JSON"))
	assert.Equal(t, FormatGeoNames, DetectFormat("US.txt"))
	assert.Equal(t, FormatGeoNames, DetectFormat("US.tsv"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	zips := filepath.Join(dir, "zips.json")
	require.NoError(t, os.WriteFile(zips,
		[]byte(`[{"code":"10001","latitude":40.75,"longitude":-73.99}]`), 0o600))
	codes, _, err := LoadPostalCodes(zips)
	require.NoError(t, err)
	assert.Len(t, codes, 1)

	tsv := filepath.Join(dir, "US.txt")
	require.NoError(t, os.WriteFile(tsv,
		[]byte("US\t10001\tNew York\tNew York\tNY\t\t\t\t\t40.75\t-73.99\t4\n"), 0o600))
	codes, _, err = LoadPostalCodes(tsv)
	require.NoError(t, err)
	assert.Len(t, codes, 1)

	_, _, err = LoadLocations(tsv)
	require.Error(t, err)

	_, _, err = LoadPostalCodes(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
