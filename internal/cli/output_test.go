package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"volleycal/internal/picker"
	"volleycal/internal/storage"
	"volleycal/internal/volley"
)

func sampleResults() []RunResult {
	return []RunResult{
		{
			Championship: "SuperLiga Masculina",
			Slug:         "superliga-masculina",
			Season:       "2025-2026",
			Status:       StatusOK,
			File:         "calendars/2025-2026/superliga-masculina.ics",
			EventsTotal:  132,
			EventsNew:    12,
		},
		{
			Championship: "SuperLiga Feminina",
			Slug:         "superliga-feminina",
			Season:       "2025-2026",
			Status:       StatusUpToDate,
			EventsTotal:  120,
		},
		{
			Championship: "Nations League Men",
			Slug:         "nations-league-men",
			Season:       "2025",
			Status:       StatusFailed,
			ErrorKind:    "network",
			Error:        "request to https://example.com failed: unexpected status code: 502",
		},
	}
}

func TestWriteSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleResults(), FormatText); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"ok          SuperLiga Masculina (2025-2026): 132 events (12 new)",
		"up-to-date  SuperLiga Feminina",
		"FAILED      Nations League Men (2025): [network]",
		"3 championships processed, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleResults(), FormatJSON); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	var s summary
	if err := json.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if len(s.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(s.Results))
	}
	if s.Succeeded != 2 || s.Failed != 1 {
		t.Errorf("expected 2 succeeded / 1 failed, got %d / %d", s.Succeeded, s.Failed)
	}
}

func TestWriteSummary_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, nil, OutputFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "network",
			err:      &volley.NetworkError{URL: "https://example.com", Err: errors.New("boom")},
			expected: "network",
		},
		{
			name:     "parse",
			err:      &volley.ParseError{URL: "https://example.com", Err: errors.New("bad json")},
			expected: "parse",
		},
		{
			name:     "file",
			err:      &storage.FileError{Path: "calendars/x.ics", Err: errors.New("denied")},
			expected: "file",
		},
		{
			name:     "other",
			err:      errors.New("anything else"),
			expected: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorKind(tt.err); got != tt.expected {
				t.Errorf("errorKind() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWriteDryRun(t *testing.T) {
	var buf bytes.Buffer
	choices := []picker.Choice{
		{Championship: volley.Championship{Name: "SuperLiga Masculina", Season: "2025-2026"}, HasCalendar: true},
		{Championship: volley.Championship{Name: "SuperLiga Feminina", Season: "2025-2026"}},
	}

	writeDryRun(&buf, choices)

	out := buf.String()
	if !strings.Contains(out, "no matches fetched, no files written") {
		t.Error("dry-run banner missing")
	}
	if !strings.Contains(out, "existing SuperLiga Masculina") {
		t.Errorf("expected existing marker:\n%s", out)
	}
	if !strings.Contains(out, "new      SuperLiga Feminina") {
		t.Errorf("expected new marker:\n%s", out)
	}
}
