package volley

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status classifies a match as the API reports it.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Match is one fixture of a championship.
type Match struct {
	Number   int
	HomeTeam string
	AwayTeam string
	City     string
	StartUTC time.Time
	Status   Status
}

type matchDaysResponse struct {
	MatchDays []string `json:"matchDays"`
}

// MatchDays lists the dates that have matches for a championship in the given
// year. utcOffset is the schedule display offset the API expects in the path,
// e.g. "-03:00".
func (c *Client) MatchDays(ch Championship, year int, utcOffset string) ([]time.Time, error) {
	var resp matchDaysResponse
	path := fmt.Sprintf("volley-tournament/matchdays/%d/%s/%d", year, utcOffset, ch.TournamentID)
	if err := c.getJSON(path, &resp); err != nil {
		return nil, err
	}

	days := make([]time.Time, 0, len(resp.MatchDays))
	for _, s := range resp.MatchDays {
		day, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.log.WithField("day", s).WithError(err).Warn("skipping unparseable match day")
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

type apiTeam struct {
	No   int    `json:"no"`
	Name string `json:"name"`
}

type apiMatch struct {
	MatchNo      int    `json:"matchNo"`
	TeamANo      int    `json:"teamANo"`
	TeamBNo      int    `json:"teamBNo"`
	MatchDateUTC string `json:"matchDateUtc"`
	City         string `json:"city"`
	MatchStatus  string `json:"matchStatus"`
}

type scheduleResponse struct {
	Matches  []apiMatch `json:"matches"`
	AllTeams []apiTeam  `json:"allTeams"`
}

// Schedule fetches every match of a championship scheduled between from and
// to, inclusive. Matches without a start time are skipped.
func (c *Client) Schedule(ch Championship, from, to time.Time) ([]Match, error) {
	var resp scheduleResponse
	path := fmt.Sprintf("volley-tournament/%s/%s/%d",
		from.Format("2006-01-02"), to.Format("2006-01-02"), ch.TournamentID)
	if err := c.getJSON(path, &resp); err != nil {
		return nil, err
	}

	teams := make(map[int]string, len(resp.AllTeams))
	for _, t := range resp.AllTeams {
		teams[t.No] = t.Name
	}

	matches := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m.MatchDateUTC == "" {
			c.log.WithField("match", m.MatchNo).Warn("skipping match without a start time")
			continue
		}
		start, err := time.Parse(time.RFC3339, m.MatchDateUTC)
		if err != nil {
			c.log.WithField("match", m.MatchNo).WithError(err).Warn("skipping match with bad start time")
			continue
		}

		matches = append(matches, Match{
			Number:   m.MatchNo,
			HomeTeam: teamName(teams, m.TeamANo),
			AwayTeam: teamName(teams, m.TeamBNo),
			City:     m.City,
			StartUTC: start.UTC(),
			Status:   parseStatus(m.MatchStatus),
		})
	}

	return matches, nil
}

func teamName(teams map[int]string, no int) string {
	if name, ok := teams[no]; ok {
		return name
	}
	return "TBD"
}

// parseStatus maps the API's status strings onto the three states the
// calendar cares about. Anything unrecognized counts as scheduled.
func parseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finished", "completed", "final":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}

// Window is a clamped date range for one schedule fetch.
type Window struct {
	From time.Time
	To   time.Time
}

// Windows groups match days into 7-day fetch windows so a whole season takes
// a handful of schedule requests instead of one per day.
func Windows(days []time.Time) []Window {
	if len(days) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var windows []Window
	for i := 0; i < len(sorted); {
		from := sorted[i]
		to := from.AddDate(0, 0, 6)
		windows = append(windows, Window{From: from, To: to})
		for i < len(sorted) && !sorted[i].After(to) {
			i++
		}
	}
	return windows
}
