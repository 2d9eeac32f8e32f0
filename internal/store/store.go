// Package store persists palettes as JSON files, one file per named collection,
// under the swatch data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/security"
)

// Collection names a persisted list of records.
type Collection string

const (
	// SavedPalettes holds palettes the user saved from the generator.
	SavedPalettes Collection = "savedPalettes"
	// AdminPresets holds curated presets managed by administrators.
	AdminPresets Collection = "admin-color-presets"
)

// ErrNotFound is returned when no record matches an ID or name.
var ErrNotFound = errors.New("record not found")

// minIDPrefix is the shortest ID prefix Get accepts.
const minIDPrefix = 4

// Record is one saved palette.
type Record struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Scheme          string         `json:"scheme,omitempty"`
	Mood            string         `json:"mood,omitempty"`
	Mode            string         `json:"mode"`
	CreatedAt       time.Time      `json:"createdAt"`
	OriginalPalette colour.Palette `json:"originalPalette"`
}

// Roles derives the full role set from the stored palette.
func (r Record) Roles() colour.ColorRoles {
	return colour.MapPaletteToRoles(r.OriginalPalette)
}

// Store reads and writes collection files. Writes replace the whole file, so the
// last writer wins when several processes share a data directory.
type Store struct {
	dir    string
	logger hclog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// New opens a store rooted at dir, creating the directory if needed.
func New(dir string, logger hclog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger.Named("store"), now: time.Now}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// ParseCollection converts a collection name.
func ParseCollection(name string) (Collection, error) {
	switch Collection(name) {
	case SavedPalettes, AdminPresets:
		return Collection(name), nil
	}
	return "", fmt.Errorf("unknown collection: %s (valid: %s, %s)", name, SavedPalettes, AdminPresets)
}

// Save validates rec and stores it. A new ID and creation time are assigned when
// missing; a record with an existing ID replaces the stored one.
func (s *Store) Save(c Collection, rec Record) (Record, error) {
	if err := security.ValidateName(rec.Name); err != nil {
		return Record{}, err
	}
	if err := rec.OriginalPalette.Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid palette: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(c)
	if err != nil {
		return Record{}, err
	}

	rec.Name = strings.TrimSpace(rec.Name)
	rec.OriginalPalette = rec.OriginalPalette.Normalise()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC().Truncate(time.Second)
	}

	if i := slices.IndexFunc(records, func(r Record) bool { return r.ID == rec.ID }); i >= 0 {
		records[i] = rec
		s.logger.Debug("replaced record", "collection", c, "id", rec.ID)
	} else {
		records = append(records, rec)
		s.logger.Debug("saved record", "collection", c, "id", rec.ID, "name", rec.Name)
	}

	if err := s.write(c, records); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get returns the record with the given ID or unique ID prefix.
func (s *Store) Get(c Collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(c)
	if err != nil {
		return Record{}, err
	}
	i, err := find(records, id)
	if err != nil {
		return Record{}, err
	}
	return records[i], nil
}

// FindByName returns the newest record whose name matches, ignoring case.
func (s *Store) FindByName(c Collection, name string) (Record, error) {
	records, err := s.List(c)
	if err != nil {
		return Record{}, err
	}
	want := strings.TrimSpace(name)
	for _, r := range records {
		if strings.EqualFold(r.Name, want) {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
}

// List returns the records of a collection, newest first.
func (s *Store) List(c Collection) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(c)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return records, nil
}

// Delete removes the record with the given ID or unique ID prefix.
func (s *Store) Delete(c Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(c)
	if err != nil {
		return err
	}
	i, err := find(records, id)
	if err != nil {
		return err
	}
	s.logger.Debug("deleted record", "collection", c, "id", records[i].ID)
	return s.write(c, slices.Delete(records, i, i+1))
}

func find(records []Record, id string) (int, error) {
	id = strings.TrimSpace(id)
	if i := slices.IndexFunc(records, func(r Record) bool { return r.ID == id }); i >= 0 {
		return i, nil
	}
	if len(id) < minIDPrefix {
		return -1, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}

	match := -1
	for i, r := range records {
		if strings.HasPrefix(r.ID, id) {
			if match >= 0 {
				return -1, fmt.Errorf("ambiguous id prefix %q", id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return match, nil
}

func (s *Store) path(c Collection) (string, error) {
	if _, err := ParseCollection(string(c)); err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, string(c)+".json")
	if err := security.ValidateStorePath(p, s.dir); err != nil {
		return "", err
	}
	return p, nil
}

// load reads a collection. A missing file is an empty collection.
func (s *Store) load(c Collection) ([]Record, error) {
	p, err := s.path(c)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p) // #nosec G304 - path validated against the data directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c, err)
	}
	return records, nil
}

// write replaces a collection file through a temporary file and rename.
func (s *Store) write(c Collection, records []Record) error {
	p, err := s.path(c)
	if err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	return nil
}
