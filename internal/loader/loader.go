// Package loader turns ingestion files into typed records. Malformed records are reported
// as findings; only I/O and broken document structure are returned as errors.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
)

// Format is an input file format.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatGeoNames Format = "geonames"
)

// DetectFormat picks a format from the file extension. Anything that is not .json
// is read as a GeoNames dump.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatGeoNames
}

// LoadPostalCodes reads postal codes from a JSON array or a GeoNames TSV file.
func LoadPostalCodes(path string) ([]postalcode.PostalCode, report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, report.Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if DetectFormat(path) == FormatJSON {
		return ReadPostalCodesJSON(f)
	}
	return ReadGeoNames(f)
}

// LoadLocations reads points of interest from a JSON array file.
func LoadLocations(path string) ([]poi.PointOfInterest, report.Report, error) {
	if DetectFormat(path) != FormatJSON {
		return nil, report.Report{}, fmt.Errorf("locations must be a .json file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, report.Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadLocationsJSON(f)
}
