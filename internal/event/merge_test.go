package event

import (
	"testing"
	"time"
)

func mkEvent(uid string, day int) Event {
	return Event{
		UID:     uid,
		Summary: "Match " + uid,
		Start:   time.Date(2025, 11, day, 20, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 11, day, 22, 0, 0, 0, time.UTC),
	}
}

func TestMerge_ReplacesByUIDAndRetainsAbsent(t *testing.T) {
	stored := []Event{mkEvent("1", 1), mkEvent("2", 2)}

	// Event 2 rescheduled, event 3 new; event 1 absent from the fetch.
	updated2 := mkEvent("2", 9)
	fetched := []Event{updated2, mkEvent("3", 3)}

	merged := Merge(stored, fetched)

	if len(merged) != 3 {
		t.Fatalf("expected 3 events, got %d", len(merged))
	}

	byUID := make(map[string]Event)
	for _, evt := range merged {
		byUID[evt.UID] = evt
	}

	if _, ok := byUID["1"]; !ok {
		t.Error("event absent from fetch should be retained")
	}
	if !byUID["2"].Start.Equal(updated2.Start) {
		t.Error("fetched event should replace the stored version")
	}
	if _, ok := byUID["3"]; !ok {
		t.Error("new fetched event should be appended")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	stored := []Event{mkEvent("1", 1), mkEvent("2", 2)}
	fetched := []Event{mkEvent("2", 9), mkEvent("3", 3)}

	once := Merge(stored, fetched)
	twice := Merge(once, fetched)

	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d vs %d events", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("event %d differs after second merge: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestMerge_EmptyStored(t *testing.T) {
	fetched := []Event{mkEvent("1", 1), mkEvent("2", 2)}
	merged := Merge(nil, fetched)

	if len(merged) != 2 {
		t.Fatalf("expected 2 events, got %d", len(merged))
	}
	for i := range fetched {
		if merged[i] != fetched[i] {
			t.Errorf("expected fetch order preserved at %d", i)
		}
	}
}

func TestMerge_EmptyFetch(t *testing.T) {
	stored := []Event{mkEvent("1", 1)}
	merged := Merge(stored, nil)

	if len(merged) != 1 || merged[0] != stored[0] {
		t.Errorf("expected stored events unchanged, got %v", merged)
	}
}

func TestMerge_DuplicateUIDsInFetch(t *testing.T) {
	fetched := []Event{mkEvent("1", 1), mkEvent("1", 5)}
	merged := Merge(nil, fetched)

	if len(merged) != 1 {
		t.Fatalf("expected duplicate fetched UIDs to collapse, got %d events", len(merged))
	}
}

func TestSortChronological(t *testing.T) {
	events := []Event{mkEvent("b", 5), mkEvent("c", 1), mkEvent("a", 5)}
	SortChronological(events)

	if events[0].UID != "c" {
		t.Errorf("expected earliest event first, got %s", events[0].UID)
	}
	// Same start time: UID breaks the tie.
	if events[1].UID != "a" || events[2].UID != "b" {
		t.Errorf("expected UID tie-break, got %s then %s", events[1].UID, events[2].UID)
	}
}
