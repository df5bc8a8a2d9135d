// Generates a sample .ics file for import-testing with calendar apps.
package main

import (
	"fmt"
	"os"
	"time"

	"volleycal/internal/calendar"
	"volleycal/internal/event"
	"volleycal/internal/volley"
)

func main() {
	ch := volley.Championship{
		Slug:   "superliga-masculina",
		Name:   "SuperLiga Masculina",
		Season: "2025-2026",
	}

	matches := []volley.Match{
		{
			Number:   101,
			HomeTeam: "Minas",
			AwayTeam: "Sada Cruzeiro",
			City:     "Belo Horizonte",
			StartUTC: time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour),
			Status:   volley.StatusScheduled,
		},
		{
			Number:   102,
			HomeTeam: "Campinas",
			AwayTeam: "Minas",
			City:     "Campinas",
			StartUTC: time.Now().UTC().Add(96 * time.Hour).Truncate(time.Hour),
			Status:   volley.StatusScheduled,
		},
	}

	cal := calendar.Calendar{
		Name:     ch.Name + " " + ch.Season,
		Timezone: "America/Sao_Paulo",
		Events:   event.FromMatches(ch, matches),
	}

	filename := "preview-calendar.ics"
	ics := calendar.Generate(cal, time.Now().UTC())
	if err := os.WriteFile(filename, []byte(ics), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s with %d events. Import it into a calendar app to check formatting.\n",
		filename, len(cal.Events))
}
