package dataset

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/report"
	"github.com/kailas-cloud/nearby/internal/domain/rules"
)

// ValidatePostalCodes checks a parsed postal code dataset before ingestion.
// Records are numbered from 1 in findings.
func ValidatePostalCodes(records []postalcode.PostalCode) report.Report {
	var r report.Report
	if len(records) == 0 {
		r.Warnf("dataset is empty")
		return r
	}

	keys := newKeyCounter(len(records))
	var avg averageChecker

	for i, pc := range records {
		label := fmt.Sprintf("record %d", i+1)
		if checkRequired(&r, label, "code", pc.Code) {
			label = fmt.Sprintf("record %d (code %s)", i+1, pc.Key())
			if !rules.IsValidPostalCode(pc.Code) {
				r.Errorf("%s: %s", label, rules.PostalCodeMessage(pc.Code))
			}
			keys.add(pc.Key())
		}

		checkPoint(&r, label, pc.Point)
		avg.add(pc.Point)

		if pc.City != nil {
			checkLength(&r, label, "city", *pc.City, rules.MaxCityLength)
		}
		if pc.Region != nil {
			checkLength(&r, label, "region", *pc.Region, rules.MaxRegionLength)
		}
	}

	r.Duplicates = keys.duplicates()
	for _, d := range r.Duplicates {
		r.Errorf("duplicate postal code %q appears %d times", d.Key, d.Count)
	}
	avg.check(&r)
	return r
}

// ValidateLocations checks a parsed point of interest dataset before ingestion.
func ValidateLocations(records []poi.PointOfInterest) report.Report {
	var r report.Report
	if len(records) == 0 {
		r.Warnf("dataset is empty")
		return r
	}

	keys := newKeyCounter(len(records))
	var avg averageChecker

	for i, p := range records {
		label := fmt.Sprintf("record %d", i+1)
		if name := strings.TrimSpace(p.Name); name != "" {
			label = fmt.Sprintf("record %d (%s)", i+1, name)
		}

		hasName := checkRequired(&r, label, "name", p.Name)
		hasAddress := checkRequired(&r, label, "address", p.Address)
		if hasName && hasAddress {
			keys.add(p.Key())
		}
		checkRequired(&r, label, "city", p.City)
		checkRequired(&r, label, "region", p.Region)
		if checkRequired(&r, label, "postal code", p.PostalCode) && !rules.IsValidPostalCode(p.PostalCode) {
			r.Errorf("%s: %s", label, rules.PostalCodeMessage(p.PostalCode))
		}

		checkLength(&r, label, "name", p.Name, rules.MaxNameLength)
		checkLength(&r, label, "address", p.Address, rules.MaxAddressLength)
		checkLength(&r, label, "city", p.City, rules.MaxCityLength)
		checkLength(&r, label, "region", p.Region, rules.MaxRegionLength)
		if p.Hours != nil {
			checkLength(&r, label, "hours", *p.Hours, rules.MaxHoursLength)
		}

		if region := strings.TrimSpace(p.Region); region != "" && len(region) != 2 {
			r.Warnf("%s: region %q is not a 2-letter code", label, region)
		}
		if p.Phone != nil && !rules.IsBlank(*p.Phone) && !rules.IsValidPhone(*p.Phone) {
			r.Warnf("%s: %s", label, rules.PhoneMessage(*p.Phone))
		}

		checkPoint(&r, label, p.Point)
		avg.add(p.Point)
	}

	r.Duplicates = keys.duplicates()
	for _, d := range r.Duplicates {
		r.Errorf("duplicate location %s appears %d times", poi.DescribeKey(d.Key), d.Count)
	}
	avg.check(&r)
	return r
}
