package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store writes the date-stamped run artifacts under the output directory.
// Filenames embed the day, so different days never overwrite each other.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// WriteDigest persists the rendered digest as {day}_{month}_{year}.md and
// returns the file path.
func (s *Store) WriteDigest(day time.Time, text string) (string, error) {
	name := fmt.Sprintf("%d_%d_%d.md", day.Day(), int(day.Month()), day.Year())
	return s.write(name, text)
}

// WriteErrorPage archives a raw page that yielded no listing as
// error_{day}_{month}_{year}.html for later inspection.
func (s *Store) WriteErrorPage(day time.Time, raw string) (string, error) {
	name := fmt.Sprintf("error_%d_%d_%d.html", day.Day(), int(day.Month()), day.Year())
	return s.write(name, raw)
}

func (s *Store) write(name, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}
	return path, nil
}
