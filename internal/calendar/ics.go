// Package calendar serializes match events to the iCalendar format and
// parses previously written files back so runs can merge instead of
// overwrite.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"volleycal/internal/event"
	"volleycal/internal/volley"
)

const prodID = "-//volleycal//Volleyball World Calendars//EN"

// Calendar is the per-championship output artifact: an ordered set of events
// plus calendar-level metadata.
type Calendar struct {
	Name     string // X-WR-CALNAME
	Timezone string // X-WR-TIMEZONE, display hint only; times stay in UTC
	Events   []event.Event
}

// Generate renders the calendar as iCalendar text. Event times are encoded in
// UTC so the file imports correctly in any viewer locale. Output is
// deterministic for a fixed stamp and event order.
func Generate(cal Calendar, stamp time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if cal.Name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(cal.Name)))
	}
	if cal.Timezone != "" {
		ics.WriteString(fmt.Sprintf("X-WR-TIMEZONE:%s\r\n", cal.Timezone))
	}

	for _, evt := range cal.Events {
		writeEvent(&ics, evt, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt event.Event, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", evt.UID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.End)))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Summary)))
	if evt.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))
	}
	if evt.Location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(evt.Location)))
	}
	ics.WriteString(fmt.Sprintf("STATUS:%s\r\n", icsStatus(evt.Status)))
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// icsStatus maps a match status onto the VEVENT STATUS property. A completed
// match stays CONFIRMED; only a cancellation changes the calendar entry.
func icsStatus(s volley.Status) string {
	if s == volley.StatusCancelled {
		return "CANCELLED"
	}
	return "CONFIRMED"
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format(icsTimeLayout)
}

const icsTimeLayout = "20060102T150405Z"

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// unescapeICS reverses escapeICS.
func unescapeICS(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			out.WriteByte('\n')
		default:
			out.WriteByte(s[i])
		}
	}
	return out.String()
}
