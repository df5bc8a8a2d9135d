// Package event provides the calendar event model derived from matches.
//
// Each match maps to one event with a stable UID built from the championship
// slug and the API-provided match number, so the same fixture keeps its
// identity across runs even when its start time moves. Merge combines stored
// and freshly fetched events by UID: fetched values win on conflict, and
// stored events absent from a fetch are retained.
package event
