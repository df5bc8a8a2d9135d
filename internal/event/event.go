package event

import (
	"fmt"
	"time"

	"volleycal/internal/volley"
)

// DefaultDuration is assumed for a match; the API only reports start times.
const DefaultDuration = 2 * time.Hour

// Event is one calendar entry for a match. Start and End are absolute UTC
// instants. An event is never mutated in place; a changed match replaces the
// whole event.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Status      volley.Status
}

// UID builds the stable identifier for a match of a championship. It contains
// no date so a rescheduled match keeps its identity.
func UID(slug string, matchNo int) string {
	return fmt.Sprintf("volleyballworld-%s-%d", slug, matchNo)
}

// FromMatch converts an API match into a calendar event for a championship.
func FromMatch(ch volley.Championship, m volley.Match) Event {
	return Event{
		UID:         UID(ch.Slug, m.Number),
		Summary:     fmt.Sprintf("%s x %s - %s", m.HomeTeam, m.AwayTeam, ch.Name),
		Description: fmt.Sprintf("%s - Match ID: %d", ch.Name, m.Number),
		Location:    m.City,
		Start:       m.StartUTC,
		End:         m.StartUTC.Add(DefaultDuration),
		Status:      m.Status,
	}
}

// FromMatches converts a batch of matches in order.
func FromMatches(ch volley.Championship, matches []volley.Match) []Event {
	events := make([]Event, 0, len(matches))
	for _, m := range matches {
		events = append(events, FromMatch(ch, m))
	}
	return events
}

// LatestStart returns the latest event start in the list, or the zero time
// for an empty list.
func LatestStart(events []Event) time.Time {
	var latest time.Time
	for _, evt := range events {
		if evt.Start.After(latest) {
			latest = evt.Start
		}
	}
	return latest
}
