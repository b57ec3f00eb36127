package stats

import (
	"testing"

	"clubsite/internal/records"
)

// TestAggregate counts totals and per-semester buckets.
func TestAggregate(t *testing.T) {
	snap := Aggregate([]records.Membership{
		{Semester: "Fall 2025"},
		{Semester: "Fall 2025"},
		{Semester: "Spring 2026"},
		{},
	})
	if snap.Total != 4 {
		t.Errorf("expected total 4, got %d", snap.Total)
	}
	if snap.BySemester["Fall 2025"] != 2 {
		t.Errorf("expected 2 for Fall 2025, got %d", snap.BySemester["Fall 2025"])
	}
	if snap.BySemester["Unknown"] != 1 {
		t.Errorf("expected blank semester under Unknown, got %v", snap.BySemester)
	}
}

// TestAggregate_Empty yields a zero snapshot, not nil maps.
func TestAggregate_Empty(t *testing.T) {
	snap := Aggregate(nil)
	if snap.Total != 0 || snap.BySemester == nil {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
