package keywords

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps a lowercase match entry to its integer weight.
type Table map[string]int

// Tables holds the two weighted tables used for scoring: keywords are
// matched against paper titles, authors against the author list.
type Tables struct {
	Keywords Table `yaml:"keywords"`
	Authors  Table `yaml:"authors"`
}

// Store loads the keyword file and maintains its sibling backup copy.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// BackupPath returns the location of the auto-maintained backup copy.
func (s *Store) BackupPath() string {
	return s.path + ".backup"
}

// Load reads the keyword file. When the primary file is unreadable or
// malformed it falls back to the backup copy; if both fail the error is
// fatal to the run. Every successful primary load refreshes the backup,
// so the latest good tables survive an edit that breaks the primary.
func (s *Store) Load() (*Tables, error) {
	tables, err := readTables(s.path)
	if err != nil {
		log.Printf("WARNING: failed to load keyword file: %v", err)
		log.Println("Loading keyword backup")
		backup, berr := readTables(s.BackupPath())
		if berr != nil {
			return nil, fmt.Errorf("keywords: primary load failed (%v); backup load failed: %w", err, berr)
		}
		return backup, nil
	}

	if err := s.saveBackup(tables); err != nil {
		log.Printf("WARNING: failed to refresh keyword backup: %v", err)
	}
	return tables, nil
}

func (s *Store) saveBackup(t *Tables) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("keywords: marshal backup: %w", err)
	}
	if err := os.WriteFile(s.BackupPath(), data, 0o644); err != nil {
		return fmt.Errorf("keywords: write backup: %w", err)
	}
	return nil
}

func readTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keywords: read %s: %w", path, err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("keywords: parse %s: %w", path, err)
	}

	t.Keywords = lowercaseKeys(t.Keywords)
	t.Authors = lowercaseKeys(t.Authors)
	return &t, nil
}

// Matching is case-insensitive, so keys are normalized once at load time.
func lowercaseKeys(t Table) Table {
	out := make(Table, len(t))
	for k, w := range t {
		out[strings.ToLower(k)] = w
	}
	return out
}
