package dataset

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/domain/rules"
)

// Average coordinate bounds beyond which a dataset looks misplaced.
const (
	maxAvgLatitude  = 60.0
	maxAvgLongitude = 150.0
)

// checkPoint reports out-of-range coordinates as errors and (0,0) as a warning.
func checkPoint(r *report.Report, label string, p geo.Point) {
	if msg := rules.CoordinateMessage(p); msg != "" {
		r.Errorf("%s: %s", label, msg)
		return
	}
	if rules.IsZeroCoordinate(p) {
		r.Warnf("%s: %s", label, rules.ZeroCoordinateMessage())
	}
}

// checkLength reports a field longer than limit as an error.
func checkLength(r *report.Report, label, field, value string, limit int) {
	if rules.ExceedsLength(value, limit) {
		r.Errorf("%s: %s", label, rules.LengthMessage(field, limit))
	}
}

// checkRequired reports a blank required field and returns false.
func checkRequired(r *report.Report, label, field, value string) bool {
	if rules.IsBlank(value) {
		r.Errorf("%s: %s", label, rules.RequiredMessage(field))
		return false
	}
	return true
}

// keyCounter counts natural keys in first-seen order.
type keyCounter struct {
	order  []string
	counts map[string]int
}

func newKeyCounter(capacity int) *keyCounter {
	return &keyCounter{counts: make(map[string]int, capacity)}
}

func (c *keyCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// duplicates returns keys seen more than once, in first-seen order.
func (c *keyCounter) duplicates() []report.DuplicateGroup {
	var out []report.DuplicateGroup
	for _, k := range c.order {
		if n := c.counts[k]; n > 1 {
			out = append(out, report.DuplicateGroup{Key: k, Count: n})
		}
	}
	return out
}

// averageChecker accumulates in-range coordinates and flags an unusual mean.
type averageChecker struct {
	sumLat, sumLon float64
	n              int
}

func (a *averageChecker) add(p geo.Point) {
	if !rules.IsLatitudeInRange(p.Latitude) || !rules.IsLongitudeInRange(p.Longitude) {
		return
	}
	a.sumLat += p.Latitude
	a.sumLon += p.Longitude
	a.n++
}

func (a *averageChecker) check(r *report.Report) {
	if a.n == 0 {
		return
	}
	avgLat := a.sumLat / float64(a.n)
	avgLon := a.sumLon / float64(a.n)
	if math.Abs(avgLat) > maxAvgLatitude || math.Abs(avgLon) > maxAvgLongitude {
		r.Warnf("unusual coordinates (average %s), check data source", formatPoint(avgLat, avgLon))
	}
}

func formatPoint(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}
