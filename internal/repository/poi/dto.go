package poi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
)

// toHash converts a PointOfInterest to a map for HSET. Absent optional fields are omitted.
func toHash(p poi.PointOfInterest) map[string]string {
	m := map[string]string{
		"id":          p.ID,
		"name":        p.Name,
		"address":     p.Address,
		"city":        p.City,
		"region":      p.Region,
		"postal_code": p.PostalCode,
		"lat":         strconv.FormatFloat(p.Point.Latitude, 'f', -1, 64),
		"lon":         strconv.FormatFloat(p.Point.Longitude, 'f', -1, 64),
		"active":      strconv.FormatBool(p.Active),
		"created_at":  strconv.FormatInt(p.CreatedAt.UnixMilli(), 10),
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Hours != nil {
		m["hours"] = *p.Hours
	}
	return m
}

// fromHash hydrates a PointOfInterest from an HGETALL result map.
func fromHash(m map[string]string) (poi.PointOfInterest, error) {
	lat, err := strconv.ParseFloat(m["lat"], 64)
	if err != nil {
		return poi.PointOfInterest{}, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(m["lon"], 64)
	if err != nil {
		return poi.PointOfInterest{}, fmt.Errorf("invalid lon: %w", err)
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return poi.PointOfInterest{}, fmt.Errorf("invalid created_at: %w", err)
	}

	// rows written without the flag count as active
	active := true
	if v, ok := m["active"]; ok && v != "" {
		if active, err = strconv.ParseBool(v); err != nil {
			return poi.PointOfInterest{}, fmt.Errorf("invalid active: %w", err)
		}
	}

	return poi.PointOfInterest{
		ID:         m["id"],
		Name:       m["name"],
		Address:    m["address"],
		City:       m["city"],
		Region:     m["region"],
		PostalCode: m["postal_code"],
		Phone:      optional(m, "phone"),
		Point:      geo.NewPoint(lat, lon),
		Hours:      optional(m, "hours"),
		Active:     active,
		CreatedAt:  time.UnixMilli(createdAt).UTC(),
	}, nil
}

func optional(m map[string]string, field string) *string {
	v, ok := m[field]
	if !ok {
		return nil
	}
	return &v
}
