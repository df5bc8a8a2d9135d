package event

import "sort"

// Merge combines previously stored events with freshly fetched ones, keyed by
// UID. A fetched event replaces the stored event carrying the same UID;
// stored events absent from the fetch are retained unchanged (the API is
// treated as incremental, not authoritative by absence); fetched events not
// seen before are appended in fetch order.
func Merge(stored, fetched []Event) []Event {
	byUID := make(map[string]Event, len(fetched))
	for _, evt := range fetched {
		byUID[evt.UID] = evt
	}

	merged := make([]Event, 0, len(stored)+len(fetched))
	seen := make(map[string]bool, len(stored))
	for _, evt := range stored {
		if updated, ok := byUID[evt.UID]; ok {
			merged = append(merged, updated)
		} else {
			merged = append(merged, evt)
		}
		seen[evt.UID] = true
	}

	for _, evt := range fetched {
		if !seen[evt.UID] {
			merged = append(merged, evt)
			seen[evt.UID] = true
		}
	}

	return merged
}

// SortChronological orders events by start time, breaking ties by UID so the
// serialized calendar is deterministic.
func SortChronological(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].UID < events[j].UID
	})
}
