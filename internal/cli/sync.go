package cli

import (
	"time"

	"github.com/sirupsen/logrus"

	"volleycal/internal/calendar"
	"volleycal/internal/event"
	"volleycal/internal/storage"
	"volleycal/internal/volley"
)

// runner drives the fetch → merge → serialize → write pipeline for the
// selected championships, one at a time.
type runner struct {
	client *volley.Client
	store  *storage.Storage
	loc    *time.Location
	log    *logrus.Logger
	now    time.Time
	pause  time.Duration
}

// process runs the pipeline for one championship. Any failure is captured in
// the result instead of propagating, so one broken championship never aborts
// the rest of the run.
func (r *runner) process(ch volley.Championship) RunResult {
	res := RunResult{
		Championship: ch.Name,
		Slug:         ch.Slug,
		Season:       ch.Season,
	}

	log := r.log.WithField("championship", ch.Slug)

	existing, err := r.store.Load(ch.Season, ch.Slug)
	if err != nil {
		return res.failed(err)
	}

	days, err := r.matchDays(ch)
	if err != nil {
		return res.failed(err)
	}

	// Skip days already covered by the stored calendar; a calendar with no
	// newer match days needs no schedule fetch at all.
	if latest := event.LatestStart(existing.Events); !latest.IsZero() {
		days = daysAfter(days, latest)
	}
	if len(days) == 0 {
		log.Debug("calendar already up to date")
		res.Status = StatusUpToDate
		res.EventsTotal = len(existing.Events)
		return res
	}

	fetched, err := r.fetchEvents(ch, volley.Windows(days))
	if err != nil {
		return res.failed(err)
	}

	merged := event.Merge(existing.Events, fetched)
	res.EventsNew = len(merged) - len(existing.Events)
	event.SortChronological(merged)

	cal := calendar.Calendar{
		Name:     ch.Name + " " + ch.Season,
		Timezone: r.loc.String(),
		Events:   merged,
	}

	path, err := r.store.Save(ch.Season, ch.Slug, cal, time.Now().UTC())
	if err != nil {
		return res.failed(err)
	}

	log.WithFields(logrus.Fields{
		"file":   path,
		"events": len(merged),
		"new":    res.EventsNew,
	}).Debug("calendar written")

	res.Status = StatusOK
	res.File = path
	res.EventsTotal = len(merged)
	return res
}

// matchDays collects the match days of every year the championship spans.
func (r *runner) matchDays(ch volley.Championship) ([]time.Time, error) {
	offset := r.now.In(r.loc).Format("-07:00")

	var days []time.Time
	for _, year := range ch.Years() {
		ds, err := r.client.MatchDays(ch, year, offset)
		if err != nil {
			return nil, err
		}
		days = append(days, ds...)
	}
	return days, nil
}

// fetchEvents fetches the schedule window by window, pausing briefly between
// requests to stay polite to the API.
func (r *runner) fetchEvents(ch volley.Championship, windows []volley.Window) ([]event.Event, error) {
	var fetched []event.Event
	for i, w := range windows {
		if i > 0 && r.pause > 0 {
			time.Sleep(r.pause)
		}
		matches, err := r.client.Schedule(ch, w.From, w.To)
		if err != nil {
			return nil, err
		}
		fetched = append(fetched, event.FromMatches(ch, matches)...)
	}
	return fetched, nil
}

// daysAfter keeps match days strictly after the day of the given instant.
func daysAfter(days []time.Time, latest time.Time) []time.Time {
	cutoff := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC)

	kept := days[:0]
	for _, day := range days {
		if day.After(cutoff) {
			kept = append(kept, day)
		}
	}
	return kept
}
