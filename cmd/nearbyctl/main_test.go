package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/config"
	"github.com/kailas-cloud/nearby/internal/db/memory"
)

const zipsJSON = `[
	{"code": "10001", "latitude": 40.7505, "longitude": -73.9965, "city": "New York", "region": "NY"},
	{"code": "60601", "latitude": 41.8858, "longitude": -87.6181, "city": "Chicago", "region": "IL"}
]`

const locationsJSON = `[
	{"name": "Downtown Office", "address": "1 Penn Plaza", "city": "New York", "region": "NY",
	 "postalCode": "10001", "latitude": 40.7505, "longitude": -73.9965},
	{"name": "Lakeside", "address": "200 Lake Dr", "city": "Evanston", "region": "IL",
	 "postalCode": "60201", "latitude": 42.04, "longitude": -87.69, "active": false}
]`

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer) {
	t.Helper()
	cfg := config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}
	cfg.ApplyDefaults()

	var out bytes.Buffer
	c := newCLI(&out)
	c.cfg = &cfg
	c.logger = zap.NewNop()
	c.store = memory.NewStore()
	return c, &out
}

func run(t *testing.T, c *cli, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	cmd := c.rootCommand()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportValidateStatsClear(t *testing.T) {
	c, out := newTestCLI(t)
	zips := writeFile(t, "zips.json", zipsJSON)
	locs := writeFile(t, "locations.json", locationsJSON)

	got, err := run(t, c, out, "import", "zipcodes", "--file", zips, "--batch-size", "1")
	require.NoError(t, err)
	assert.Contains(t, got, "processed 2: 2 inserted, 0 skipped, 0 failed")

	got, err = run(t, c, out, "import", "zipcodes", "--file", zips)
	require.NoError(t, err)
	assert.Contains(t, got, "0 inserted, 2 skipped")

	got, err = run(t, c, out, "import", "locations", "-f", locs)
	require.NoError(t, err)
	assert.Contains(t, got, "2 inserted")

	got, err = run(t, c, out, "stats")
	require.NoError(t, err)
	assert.Contains(t, got, "postal codes:        2")
	assert.Contains(t, got, "active locations:    1")

	got, err = run(t, c, out, "validate")
	require.NoError(t, err)
	assert.Contains(t, got, `references unknown postal code "60201"`)
	assert.Contains(t, got, `postal code "60601" is not referenced`)
	assert.Contains(t, got, "Validation failed: 1 error(s), 1 warning(s)")

	_, err = run(t, c, out, "clear", "all")
	require.ErrorIs(t, err, errNotConfirmed)

	got, err = run(t, c, out, "clear", "all", "--yes")
	require.NoError(t, err)
	assert.Contains(t, got, "Deleted 4 all record(s)")
}

func TestImport_ErrorsBlockWithoutForce(t *testing.T) {
	c, out := newTestCLI(t)
	bad := writeFile(t, "zips.json", `[
		{"code": "abc12", "latitude": 40.7, "longitude": -73.9},
		{"code": "10001", "latitude": 40.7, "longitude": -73.9}
	]`)

	got, err := run(t, c, out, "import", "zipcodes", "--file", bad)
	require.NoError(t, err)
	assert.Contains(t, got, "Nothing imported")

	got, err = run(t, c, out, "stats")
	require.NoError(t, err)
	assert.Contains(t, got, "postal codes:        0")

	got, err = run(t, c, out, "import", "zipcodes", "--file", bad, "--force")
	require.NoError(t, err)
	assert.Contains(t, got, "2 inserted")
}

func TestImport_MissingFileIsSetupFailure(t *testing.T) {
	c, out := newTestCLI(t)
	_, err := run(t, c, out, "import", "zipcodes", "--file", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	_, err = run(t, c, out, "import", "everything", "--file", "x.json")
	require.Error(t, err)
}

func TestValidateFile_TruncatesFindings(t *testing.T) {
	c, out := newTestCLI(t)

	var b strings.Builder
	b.WriteString("[")
	for i := range 15 {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"name": "Same", "address": "1 Main St", "city": "X", "region": "NY",
			"postalCode": "bad", "latitude": 40, "longitude": -73}`)
	}
	b.WriteString("]")
	path := writeFile(t, "locations.json", b.String())

	got, err := run(t, c, out, "validate", "--file", path, "--type", "locations")
	require.NoError(t, err)
	assert.Contains(t, got, "Errors (16):")
	assert.Contains(t, got, "... and 6 more")
	assert.Contains(t, got, "Validation failed")

	_, err = run(t, c, out, "validate", "--file", path, "--type", "pois")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	c, out := newTestCLI(t)
	got, err := run(t, c, out, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "nearbyctl dev"))
}
