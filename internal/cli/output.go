package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"volleycal/internal/picker"
	"volleycal/internal/storage"
	"volleycal/internal/volley"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunStatus is the outcome of one championship's pipeline.
type RunStatus string

const (
	StatusOK       RunStatus = "ok"
	StatusUpToDate RunStatus = "up-to-date"
	StatusFailed   RunStatus = "failed"
)

// RunResult records what happened to one championship during a run.
type RunResult struct {
	Championship string    `json:"championship"`
	Slug         string    `json:"slug"`
	Season       string    `json:"season"`
	Status       RunStatus `json:"status"`
	File         string    `json:"file,omitempty"`
	EventsTotal  int       `json:"events_total,omitempty"`
	EventsNew    int       `json:"events_new,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// failed marks the result with the error and its classification.
func (r RunResult) failed(err error) RunResult {
	r.Status = StatusFailed
	r.ErrorKind = errorKind(err)
	r.Error = err.Error()
	return r
}

// errorKind classifies a pipeline failure for the summary.
func errorKind(err error) string {
	var netErr *volley.NetworkError
	if errors.As(err, &netErr) {
		return "network"
	}
	var parseErr *volley.ParseError
	if errors.As(err, &parseErr) {
		return "parse"
	}
	var fileErr *storage.FileError
	if errors.As(err, &fileErr) {
		return "file"
	}
	return "error"
}

// summary is the JSON envelope for a run.
type summary struct {
	CheckedAt time.Time   `json:"checked_at"`
	Results   []RunResult `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// WriteSummary writes the end-of-run summary in the requested format.
func WriteSummary(w io.Writer, results []RunResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatText:
		return writeText(w, results)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, results []RunResult) error {
	s := summary{
		CheckedAt: time.Now().UTC(),
		Results:   results,
	}
	for _, res := range results {
		if res.Status == StatusFailed {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

func writeText(w io.Writer, results []RunResult) error {
	failed := 0
	fmt.Fprintln(w)
	for _, res := range results {
		switch res.Status {
		case StatusOK:
			fmt.Fprintf(w, "  ok          %s (%s): %d events (%d new) -> %s\n",
				res.Championship, res.Season, res.EventsTotal, res.EventsNew, res.File)
		case StatusUpToDate:
			fmt.Fprintf(w, "  up-to-date  %s (%s): %d events\n",
				res.Championship, res.Season, res.EventsTotal)
		case StatusFailed:
			failed++
			fmt.Fprintf(w, "  FAILED      %s (%s): [%s] %s\n",
				res.Championship, res.Season, res.ErrorKind, res.Error)
		}
	}

	fmt.Fprintf(w, "\n%d championships processed, %d failed\n", len(results), failed)
	return nil
}

// writeDryRun lists what a real run would process, without fetching or
// writing anything.
func writeDryRun(w io.Writer, choices []picker.Choice) {
	fmt.Fprintln(w, "\nDry run: no matches fetched, no files written.")
	for _, c := range choices {
		marker := "new"
		if c.HasCalendar {
			marker = "existing"
		}
		fmt.Fprintf(w, "  %-8s %s (%s)\n", marker, c.Championship.Name, c.Championship.Season)
	}
	fmt.Fprintf(w, "\n%d active championships discovered\n", len(choices))
}
