// Package scores persists the high score table as a two-column CSV file.
package scores

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
)

var ErrMalformed = errors.New("malformed score table")

var header = []string{"name", "score"}

type Entry struct {
	Name  string
	Score int
}

// Store is a score table backed by a CSV file. Entries are kept sorted by
// score, highest first; equal scores keep insertion order.
type Store struct {
	path    string
	entries []Entry

	mu sync.RWMutex
}

// Open loads the table at path. A missing file is an empty table; the file
// is created on the first write.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *Store {
	return &Store{}
}

// Load rereads the file, discarding the cached table.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening scores: %w", err)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(s.path), err)
	}
	s.entries = entries
	return nil
}

// Decode parses a score table. Rows are sorted on the way in so a hand-edited
// file still reads highest first.
func Decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !slices.Equal(rows[0], header) {
		return nil, fmt.Errorf("%w: header %q", ErrMalformed, rows[0])
	}

	var entries []Entry
	for i, row := range rows[1:] {
		score, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, i+2, err)
		}
		entries = append(entries, Entry{Name: row[0], Score: score})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.Score - a.Score })
	return entries, nil
}

// Encode writes entries with the header row.
func Encode(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Name, strconv.Itoa(e.Score)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Entries returns a copy of the full table.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Append inserts a score after every existing entry with an equal or higher
// score and saves the table.
func (s *Store) Append(name string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _ := slices.BinarySearchFunc(s.entries, score, func(e Entry, target int) int {
		if e.Score >= target {
			return -1
		}
		return 1
	})
	s.entries = slices.Insert(s.entries, i, Entry{Name: name, Score: score})
	return s.save()
}

// Delete removes every entry recorded under name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool { return e.Name == name })
	if len(s.entries) == n {
		return nil
	}
	return s.save()
}

// Top returns at most n entries with each name listed once, at its best
// score.
func (s *Store) Top(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []Entry
	for _, e := range s.entries {
		if len(out) == n {
			break
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s.entries); err != nil {
		return fmt.Errorf("encoding scores: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating score directory: %w", err)
		}
	}
	return atomicWrite(s.path, buf.Bytes(), 0o644)
}

// atomicWrite writes data to a temp file then renames it over path so an
// interrupted write never leaves a truncated table.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
