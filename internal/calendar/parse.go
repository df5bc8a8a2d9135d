package calendar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"volleycal/internal/event"
	"volleycal/internal/volley"
)

// Parse reads iCalendar text previously produced by Generate and returns the
// calendar it describes. Unknown properties are ignored; events keep file
// order.
func Parse(r io.Reader) (Calendar, error) {
	lines, err := unfold(r)
	if err != nil {
		return Calendar{}, fmt.Errorf("reading calendar: %w", err)
	}

	var cal Calendar
	var cur *event.Event

	for _, line := range lines {
		name, value, ok := splitProperty(line)
		if !ok {
			continue
		}

		if name == "BEGIN" && value == "VEVENT" {
			if cur != nil {
				return Calendar{}, fmt.Errorf("nested VEVENT")
			}
			cur = &event.Event{Status: volley.StatusScheduled}
			continue
		}
		if name == "END" && value == "VEVENT" {
			if cur == nil {
				return Calendar{}, fmt.Errorf("END:VEVENT without BEGIN")
			}
			if cur.UID == "" {
				return Calendar{}, fmt.Errorf("event missing UID")
			}
			cal.Events = append(cal.Events, *cur)
			cur = nil
			continue
		}

		if cur == nil {
			switch name {
			case "X-WR-CALNAME":
				cal.Name = unescapeICS(value)
			case "X-WR-TIMEZONE":
				cal.Timezone = value
			}
			continue
		}

		switch name {
		case "UID":
			cur.UID = value
		case "SUMMARY":
			cur.Summary = unescapeICS(value)
		case "DESCRIPTION":
			cur.Description = unescapeICS(value)
		case "LOCATION":
			cur.Location = unescapeICS(value)
		case "DTSTART":
			t, err := time.Parse(icsTimeLayout, value)
			if err != nil {
				return Calendar{}, fmt.Errorf("parsing DTSTART %q: %w", value, err)
			}
			cur.Start = t
		case "DTEND":
			t, err := time.Parse(icsTimeLayout, value)
			if err != nil {
				return Calendar{}, fmt.Errorf("parsing DTEND %q: %w", value, err)
			}
			cur.End = t
		case "STATUS":
			if value == "CANCELLED" {
				cur.Status = volley.StatusCancelled
			}
		}
	}

	if cur != nil {
		return Calendar{}, fmt.Errorf("unterminated VEVENT")
	}

	return cal, nil
}

// unfold joins RFC 5545 folded lines: a line starting with a space or tab
// continues the previous one.
func unfold(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// splitProperty splits "NAME;PARAMS:VALUE" into name and value, dropping any
// property parameters.
func splitProperty(line string) (name, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	name = line[:idx]
	value = line[idx+1:]
	if p := strings.Index(name, ";"); p >= 0 {
		name = name[:p]
	}
	return strings.ToUpper(strings.TrimSpace(name)), value, true
}
