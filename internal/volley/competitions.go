package volley

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Championship is one gendered tournament of a competition for a season.
// It is read-only within a run.
type Championship struct {
	Slug         string
	Name         string
	Season       string
	TournamentID int
	StartDate    time.Time
	EndDate      time.Time
}

// ActiveAt reports whether the championship's date range contains t.
func (c Championship) ActiveAt(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// Years returns every calendar year the championship spans, in order.
func (c Championship) Years() []int {
	years := make([]int, 0, c.EndDate.Year()-c.StartDate.Year()+1)
	for y := c.StartDate.Year(); y <= c.EndDate.Year(); y++ {
		years = append(years, y)
	}
	return years
}

type apiCompetition struct {
	CompetitionShortName string `json:"competitionShortName"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	MenTournaments       int    `json:"menTournaments"`
	WomenTournaments     int    `json:"womenTournaments"`
}

type competitionsResponse struct {
	Competitions []apiCompetition `json:"competitions"`
}

// Competitions lists every championship the API reports for a year. A
// competition carrying both a men's and a women's tournament yields two
// championships.
func (c *Client) Competitions(year int) ([]Championship, error) {
	var resp competitionsResponse
	path := fmt.Sprintf("globalschedule/competitions/%d/", year)
	if err := c.getJSON(path, &resp); err != nil {
		return nil, err
	}

	champs := make([]Championship, 0, len(resp.Competitions))
	for _, comp := range resp.Competitions {
		start, err := time.Parse(time.RFC3339, comp.StartDate)
		if err != nil {
			c.log.WithField("competition", comp.CompetitionShortName).
				WithError(err).Warn("skipping competition with bad start date")
			continue
		}
		end, err := time.Parse(time.RFC3339, comp.EndDate)
		if err != nil {
			c.log.WithField("competition", comp.CompetitionShortName).
				WithError(err).Warn("skipping competition with bad end date")
			continue
		}

		// Only suffix the gender when the competition carries both
		// tournaments; names like "SuperLiga Masculina" already say it.
		both := comp.MenTournaments != 0 && comp.WomenTournaments != 0
		if comp.MenTournaments != 0 {
			name := comp.CompetitionShortName
			if both {
				name += " Men"
			}
			champs = append(champs, newChampionship(name, comp.MenTournaments, start, end))
		}
		if comp.WomenTournaments != 0 {
			name := comp.CompetitionShortName
			if both {
				name += " Women"
			}
			champs = append(champs, newChampionship(name, comp.WomenTournaments, start, end))
		}
	}

	return champs, nil
}

// Active filters championships to those whose date range contains now.
func Active(champs []Championship, now time.Time) []Championship {
	active := make([]Championship, 0, len(champs))
	for _, ch := range champs {
		if ch.ActiveAt(now) {
			active = append(active, ch)
		}
	}
	return active
}

func newChampionship(name string, tournamentID int, start, end time.Time) Championship {
	return Championship{
		Slug:         Slugify(name),
		Name:         name,
		Season:       seasonLabel(start, end),
		TournamentID: tournamentID,
		StartDate:    start,
		EndDate:      end,
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a championship name and collapses everything that is not
// a letter or digit into single dashes.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// seasonLabel names a season by the years it spans, e.g. "2025-2026" or
// "2025" for a season contained in one year.
func seasonLabel(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d", start.Year())
	}
	return fmt.Sprintf("%d-%d", start.Year(), end.Year())
}
