package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"volleycal/internal/calendar"
)

// FileError reports a calendar file that could not be read, parsed, or
// written.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("calendar file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Storage resolves and persists calendar files under a base directory.
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir. A leading ~/ is expanded to the user's
// home directory.
func New(dir string) (*Storage, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	return &Storage{dir: dir}, nil
}

// Path returns the file path for a championship's calendar.
func (s *Storage) Path(season, slug string) string {
	return filepath.Join(s.dir, season, slug+".ics")
}

// Exists reports whether a calendar file has been written for the
// championship.
func (s *Storage) Exists(season, slug string) bool {
	_, err := os.Stat(s.Path(season, slug))
	return err == nil
}

// Load reads a championship's calendar file. A missing file is not an error;
// it returns an empty calendar.
func (s *Storage) Load(season, slug string) (calendar.Calendar, error) {
	path := s.Path(season, slug)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return calendar.Calendar{}, nil
		}
		return calendar.Calendar{}, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	cal, err := calendar.Parse(f)
	if err != nil {
		return calendar.Calendar{}, &FileError{Path: path, Err: err}
	}
	return cal, nil
}

// Save serializes the calendar and writes it to the championship's file,
// creating the season directory on demand. It returns the written path.
func (s *Storage) Save(season, slug string, cal calendar.Calendar, stamp time.Time) (string, error) {
	path := s.Path(season, slug)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	ics := calendar.Generate(cal, stamp)
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	return path, nil
}
