package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"volleycal/internal/volley"
)

// Mode selects how championships are chosen for a run.
type Mode int

const (
	// ModeInteractive presents a checklist and blocks on user input.
	ModeInteractive Mode = iota
	// ModeUpdateExisting selects exactly the championships that already
	// have a calendar file.
	ModeUpdateExisting
	// ModeDryRun selects everything; the caller only lists, never fetches.
	ModeDryRun
)

// Choice pairs a discovered championship with whether a calendar file for it
// already exists.
type Choice struct {
	Championship volley.Championship
	HasCalendar  bool
}

// ErrAborted is returned when the user cancels the interactive checklist.
var ErrAborted = errors.New("selection aborted")

// Select returns the championships to process for the given mode. in and out
// are only used by the interactive checklist.
func Select(mode Mode, choices []Choice, in io.Reader, out io.Writer) ([]volley.Championship, error) {
	switch mode {
	case ModeUpdateExisting:
		selected := make([]volley.Championship, 0, len(choices))
		for _, c := range choices {
			if c.HasCalendar {
				selected = append(selected, c.Championship)
			}
		}
		return selected, nil

	case ModeDryRun:
		selected := make([]volley.Championship, 0, len(choices))
		for _, c := range choices {
			selected = append(selected, c.Championship)
		}
		return selected, nil

	case ModeInteractive:
		return runChecklist(choices, in, out)

	default:
		return nil, fmt.Errorf("unknown selection mode: %d", mode)
	}
}

// runChecklist is the blocking terminal checklist. Championships with an
// existing calendar start checked. The user toggles entries by number,
// "all"/"none" flip everything, an empty line confirms, and "q" aborts.
func runChecklist(choices []Choice, in io.Reader, out io.Writer) ([]volley.Championship, error) {
	checked := make([]bool, len(choices))
	for i, c := range choices {
		checked[i] = c.HasCalendar
	}

	scanner := bufio.NewScanner(in)
	for {
		render(choices, checked, out)
		fmt.Fprint(out, "Toggle by number (space separated), 'all', 'none', empty line to confirm, 'q' to quit: ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading selection: %w", err)
			}
			// EOF with no confirmation counts as a cancel.
			return nil, ErrAborted
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			selected := make([]volley.Championship, 0, len(choices))
			for i, c := range choices {
				if checked[i] {
					selected = append(selected, c.Championship)
				}
			}
			return selected, nil
		case "q", "quit":
			return nil, ErrAborted
		case "all", "a":
			for i := range checked {
				checked[i] = true
			}
			continue
		case "none", "n":
			for i := range checked {
				checked[i] = false
			}
			continue
		}

		for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' }) {
			n, err := strconv.Atoi(tok)
			if err != nil || n < 1 || n > len(choices) {
				fmt.Fprintf(out, "Ignoring %q: enter a number between 1 and %d\n", tok, len(choices))
				continue
			}
			checked[n-1] = !checked[n-1]
		}
	}
}

func render(choices []Choice, checked []bool, out io.Writer) {
	fmt.Fprintln(out, "\nActive championships:")
	for i, c := range choices {
		mark := " "
		if checked[i] {
			mark = "x"
		}
		fmt.Fprintf(out, "  [%s] %2d. %s (%s)\n", mark, i+1, c.Championship.Name, c.Championship.Season)
	}
}
