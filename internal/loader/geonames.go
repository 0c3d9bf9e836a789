package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
)

// GeoNames postal dump columns (download.geonames.org/export/zip).
const (
	geoNamesFields    = 12
	geoNamesCode      = 1
	geoNamesCity      = 2
	geoNamesState     = 4
	geoNamesLatitude  = 9
	geoNamesLongitude = 10
)

// ReadGeoNames parses a tab-separated GeoNames postal code dump.
func ReadGeoNames(r io.Reader) ([]postalcode.PostalCode, report.Report, error) {
	var (
		out []postalcode.PostalCode
		rep report.Report
	)

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rep.Errorf("line %d: %v", line, parseErr.Err)
				continue
			}
			return out, rep, fmt.Errorf("read line %d: %w", line, err)
		}
		if len(record) < geoNamesFields-1 {
			rep.Errorf("line %d: expected %d fields, got %d", line, geoNamesFields, len(record))
			continue
		}

		lat, err := strconv.ParseFloat(record[geoNamesLatitude], 64)
		if err != nil {
			rep.Errorf("line %d: invalid latitude %q", line, record[geoNamesLatitude])
			continue
		}
		lon, err := strconv.ParseFloat(record[geoNamesLongitude], 64)
		if err != nil {
			rep.Errorf("line %d: invalid longitude %q", line, record[geoNamesLongitude])
			continue
		}

		city, state := record[geoNamesCity], record[geoNamesState]
		out = append(out, postalcode.New(
			record[geoNamesCode],
			geo.NewPoint(lat, lon),
			nonEmpty(&city),
			nonEmpty(&state),
		))
	}
	return out, rep, nil
}
