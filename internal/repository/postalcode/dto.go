package postalcode

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
)

// toHash converts a PostalCode to a map for HSET. Absent optional fields are omitted.
func toHash(pc postalcode.PostalCode) map[string]string {
	m := map[string]string{
		"code": pc.Key(),
		"lat":  strconv.FormatFloat(pc.Point.Latitude, 'f', -1, 64),
		"lon":  strconv.FormatFloat(pc.Point.Longitude, 'f', -1, 64),
	}
	if pc.City != nil {
		m["city"] = *pc.City
	}
	if pc.Region != nil {
		m["region"] = *pc.Region
	}
	return m
}

// fromHash hydrates a PostalCode from an HGETALL result map.
func fromHash(m map[string]string) (postalcode.PostalCode, error) {
	lat, err := strconv.ParseFloat(m["lat"], 64)
	if err != nil {
		return postalcode.PostalCode{}, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(m["lon"], 64)
	if err != nil {
		return postalcode.PostalCode{}, fmt.Errorf("invalid lon: %w", err)
	}
	return postalcode.New(m["code"], geo.NewPoint(lat, lon), optional(m, "city"), optional(m, "region")), nil
}

func optional(m map[string]string, field string) *string {
	v, ok := m[field]
	if !ok {
		return nil
	}
	return &v
}
