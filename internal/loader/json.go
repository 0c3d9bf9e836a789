package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
)

// postalCodeRecord accepts both the native field names and the common zipCode/state aliases.
type postalCodeRecord struct {
	Code      *string  `json:"code"`
	ZipCode   *string  `json:"zipCode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      *string  `json:"city"`
	Region    *string  `json:"region"`
	State     *string  `json:"state"`
}

type locationRecord struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	Region     *string  `json:"region"`
	State      *string  `json:"state"`
	PostalCode *string  `json:"postalCode"`
	ZipCode    *string  `json:"zipCode"`
	Phone      *string  `json:"phone"`
	Hours      *string  `json:"hours"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Active     *bool    `json:"active"`
}

// ReadPostalCodesJSON decodes a JSON array of postal codes.
func ReadPostalCodesJSON(r io.Reader) ([]postalcode.PostalCode, report.Report, error) {
	var out []postalcode.PostalCode
	rep, err := decodeArray(r, func(n int, raw json.RawMessage, rep *report.Report) {
		var rec postalCodeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			rep.Errorf("record %d: %s", n, describeJSONError(err))
			return
		}
		point, ok := requirePoint(n, rec.Latitude, rec.Longitude, rep)
		if !ok {
			return
		}
		code := firstString(rec.Code, rec.ZipCode)
		out = append(out, postalcode.New(code, point, nonEmpty(rec.City), nonEmpty(firstPtr(rec.Region, rec.State))))
	})
	return out, rep, err
}

// ReadLocationsJSON decodes a JSON array of points of interest. A missing active flag means active.
func ReadLocationsJSON(r io.Reader) ([]poi.PointOfInterest, report.Report, error) {
	var out []poi.PointOfInterest
	rep, err := decodeArray(r, func(n int, raw json.RawMessage, rep *report.Report) {
		var rec locationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			rep.Errorf("record %d: %s", n, describeJSONError(err))
			return
		}
		point, ok := requirePoint(n, rec.Latitude, rec.Longitude, rep)
		if !ok {
			return
		}
		active := true
		if rec.Active != nil {
			active = *rec.Active
		}
		out = append(out, poi.PointOfInterest{
			Name:       strings.TrimSpace(rec.Name),
			Address:    strings.TrimSpace(rec.Address),
			City:       strings.TrimSpace(rec.City),
			Region:     strings.TrimSpace(firstString(rec.Region, rec.State)),
			PostalCode: strings.TrimSpace(firstString(rec.PostalCode, rec.ZipCode)),
			Phone:      nonEmpty(rec.Phone),
			Hours:      nonEmpty(rec.Hours),
			Point:      point,
			Active:     active,
		})
	})
	return out, rep, err
}

// decodeArray streams the top-level array. Element type errors are findings;
// broken JSON syntax stops the read and is returned as an error.
func decodeArray(r io.Reader, each func(n int, raw json.RawMessage, rep *report.Report)) (report.Report, error) {
	var rep report.Report
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return rep, nil
	}
	if err != nil {
		return rep, fmt.Errorf("read array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return rep, fmt.Errorf("expected a JSON array, got %v", tok)
	}

	n := 0
	for dec.More() {
		n++
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return rep, fmt.Errorf("record %d: %w", n, err)
		}
		each(n, raw, &rep)
	}
	if _, err := dec.Token(); err != nil {
		return rep, fmt.Errorf("read array end: %w", err)
	}
	return rep, nil
}

func requirePoint(n int, lat, lon *float64, rep *report.Report) (geo.Point, bool) {
	switch {
	case lat == nil && lon == nil:
		rep.Errorf("record %d: latitude and longitude are required", n)
	case lat == nil:
		rep.Errorf("record %d: latitude is required", n)
	case lon == nil:
		rep.Errorf("record %d: longitude is required", n)
	default:
		return geo.NewPoint(*lat, *lon), true
	}
	return geo.Point{}, false
}

func describeJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("field %q: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return err.Error()
}

func firstPtr(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(vals ...*string) string {
	if v := firstPtr(vals...); v != nil {
		return *v
	}
	return ""
}

// nonEmpty maps blank strings to nil so optional fields stay absent.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
