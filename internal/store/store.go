// Package store persists parsed releases in a single YAML file. It plays the
// role of the relational backend: release rows, item rows keyed to their
// release, and an upload batch id on every row so an import can be undone.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrBatchNotFound is returned by RollbackBatch for an id no row carries.
var ErrBatchNotFound = errors.New("upload batch not found")

// Release is a stored release row.
type Release struct {
	ID            string    `yaml:"id" json:"id"`
	Version       string    `yaml:"version" json:"version"`
	ReleaseDate   string    `yaml:"release_date" json:"release_date"`
	UploadBatchID string    `yaml:"upload_batch_id" json:"upload_batch_id"`
	IsQuarterly   bool      `yaml:"is_quarterly" json:"is_quarterly"`
	CreatedAt     time.Time `yaml:"created_at" json:"created_at"`
}

// Item is a stored release item row.
type Item struct {
	ID            string                  `yaml:"id" json:"id"`
	ReleaseID     string                  `yaml:"release_id" json:"release_id"`
	Title         string                  `yaml:"title" json:"title"`
	Description   string                  `yaml:"description" json:"description"`
	AzureDevopsID *int                    `yaml:"azure_devops_id" json:"azure_devops_id"`
	Component     *releasenotes.Component `yaml:"component" json:"component"`
	Category      *releasenotes.Category  `yaml:"category" json:"category"`
	UploadBatchID string                  `yaml:"upload_batch_id" json:"upload_batch_id"`
	CreatedAt     time.Time               `yaml:"created_at" json:"created_at"`
}

// document is the on-disk layout.
type document struct {
	Releases []Release `yaml:"releases"`
	Items    []Item    `yaml:"items"`
}

// Store is a YAML-file release store. All methods are safe for concurrent
// use within one process; writes replace the file atomically.
type Store struct {
	path  string
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator for row and batch ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Open returns a store backed by path, creating the parent directory. The
// file itself is created on first write.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	s := &Store{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// load reads the document. A missing file is an empty store.
func (s *Store) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{}, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
	}
	return &doc, nil
}

// save writes the document with the temp file + rename pattern.
func (s *Store) save(doc *document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp store file: %w", err)
	}
	return nil
}

// update runs fn on the loaded document under the lock and saves the result
// unless fn fails.
func (s *Store) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// read runs fn on the loaded document under the lock.
func (s *Store) read(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// removeReleases drops the releases for which drop returns true together
// with their items, and returns how many of each went.
func (doc *document) removeReleases(drop func(Release) bool) (releases, items int) {
	gone := make(map[string]bool)
	kept := doc.Releases[:0]
	for _, r := range doc.Releases {
		if drop(r) {
			gone[r.ID] = true
			continue
		}
		kept = append(kept, r)
	}
	doc.Releases = kept

	items = doc.removeItems(func(it Item) bool { return gone[it.ReleaseID] })
	return len(gone), items
}

func (doc *document) removeItems(drop func(Item) bool) int {
	kept := doc.Items[:0]
	removed := 0
	for _, it := range doc.Items {
		if drop(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	doc.Items = kept
	return removed
}

func (doc *document) releaseByVersion(version string) *Release {
	for i := range doc.Releases {
		if doc.Releases[i].Version == version {
			return &doc.Releases[i]
		}
	}
	return nil
}
