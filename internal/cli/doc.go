// Package cli implements the volleycal command.
//
// The Cobra-based command discovers the active championships, selects a
// subset (interactive checklist, --update-existing, or --dry-run), and runs
// the fetch → merge → serialize → write pipeline per championship. Failures
// are isolated per championship and reported in an end-of-run summary; the
// exit code is non-zero when any championship failed.
package cli
