package report

import "testing"

func TestReport_Findings(t *testing.T) {
	var r Report
	if !r.Valid() {
		t.Fatal("empty report must be valid")
	}

	r.Warnf("record %d: %s", 3, "zero coordinates")
	if !r.Valid() {
		t.Fatal("warnings must not invalidate the report")
	}

	r.Errorf("record %d: %s", 4, "name is required")
	if r.Valid() {
		t.Fatal("errors must invalidate the report")
	}
	if r.Errors[0] != "record 4: name is required" || r.Warnings[0] != "record 3: zero coordinates" {
		t.Errorf("unexpected findings: %v / %v", r.Errors, r.Warnings)
	}
}

func TestReport_Merge(t *testing.T) {
	a := Report{Errors: []string{"e1"}}
	b := Report{Errors: []string{"e2"}, Warnings: []string{"w1"}, Duplicates: []DuplicateGroup{{Key: "k", Count: 2}}}
	a.Merge(b)
	if len(a.Errors) != 2 || len(a.Warnings) != 1 || len(a.Duplicates) != 1 {
		t.Errorf("merge result: %+v", a)
	}
}
