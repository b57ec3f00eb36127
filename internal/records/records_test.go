package records

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
}

// TestSortMembershipsByCreatedDesc_NewestFirst checks the client-side
// fallback ordering used when the store rejects the ordered query.
func TestSortMembershipsByCreatedDesc_NewestFirst(t *testing.T) {
	list := []Membership{
		{ID: "a", CreatedAt: day(1)},
		{ID: "b", CreatedAt: day(9)},
		{ID: "c", CreatedAt: day(4)},
	}
	sortMembershipsByCreatedDesc(list)
	got := list[0].ID + list[1].ID + list[2].ID
	if got != "bca" {
		t.Errorf("expected order bca, got %s", got)
	}
}

// TestSortMessagesByCreatedDesc_MissingTimestampSortsLast checks that a zero
// CreatedAt is treated as epoch zero and ends up at the tail.
func TestSortMessagesByCreatedDesc_MissingTimestampSortsLast(t *testing.T) {
	list := []Message{
		{ID: "missing"},
		{ID: "old", CreatedAt: day(2)},
		{ID: "new", CreatedAt: day(8)},
	}
	sortMessagesByCreatedDesc(list)
	if list[0].ID != "new" || list[2].ID != "missing" {
		t.Errorf("unexpected order: %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

// TestCreatedMillis_ZeroTime pins the epoch-zero treatment of missing timestamps.
func TestCreatedMillis_ZeroTime(t *testing.T) {
	if got := createdMillis(time.Time{}); got != 0 {
		t.Errorf("expected 0 for zero time, got %d", got)
	}
	if got := createdMillis(day(1)); got != day(1).UnixMilli() {
		t.Errorf("expected %d, got %d", day(1).UnixMilli(), got)
	}
}
