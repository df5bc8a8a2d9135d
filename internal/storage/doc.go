// Package storage manages the per-championship calendar files on disk.
//
// One .ics file is written per championship, laid out as
// <dir>/<season>/<slug>.ics, with season directories created on demand.
// Files are loaded back through the calendar parser so later runs can merge
// freshly fetched events into what was already written; a calendar file is
// never deleted by the program.
package storage
