package store

import (
	"fmt"
	"sort"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
)

// ReleaseOutcome reports what an import did with one payload.
type ReleaseOutcome struct {
	Version   string
	ReleaseID string
	// Created is false when an existing release row was reused.
	Created bool
	Items   int
}

// ImportResult summarizes one import batch.
type ImportResult struct {
	BatchID  string
	Releases []ReleaseOutcome
	// Replaced counts release rows deleted first by Replace.
	Replaced int
}

// ItemCount is the number of items inserted by the batch.
func (r *ImportResult) ItemCount() int {
	n := 0
	for _, rel := range r.Releases {
		n += rel.Items
	}
	return n
}

// Import stores payloads under a fresh upload batch id. A release row is
// looked up by version and created only when missing; items are always
// inserted. Either every payload is stored or none is.
func (s *Store) Import(payloads []releasenotes.Payload) (*ImportResult, error) {
	var result *ImportResult
	err := s.update(func(doc *document) error {
		result = s.importInto(doc, payloads)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Replace deletes the releases whose versions appear in payloads, cascading
// to their items, and imports the payloads in the same write.
func (s *Store) Replace(payloads []releasenotes.Payload) (*ImportResult, error) {
	versions := make(map[string]bool, len(payloads))
	for _, p := range payloads {
		versions[p.Release.Version] = true
	}

	var result *ImportResult
	err := s.update(func(doc *document) error {
		replaced, _ := doc.removeReleases(func(r Release) bool { return versions[r.Version] })
		result = s.importInto(doc, payloads)
		result.Replaced = replaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) importInto(doc *document, payloads []releasenotes.Payload) *ImportResult {
	now := s.now().UTC()
	result := &ImportResult{BatchID: s.newID()}

	for _, p := range payloads {
		outcome := ReleaseOutcome{Version: p.Release.Version}

		if existing := doc.releaseByVersion(p.Release.Version); existing != nil {
			outcome.ReleaseID = existing.ID
		} else {
			rel := Release{
				ID:            s.newID(),
				Version:       p.Release.Version,
				ReleaseDate:   p.Release.ReleaseDate,
				UploadBatchID: result.BatchID,
				CreatedAt:     now,
			}
			doc.Releases = append(doc.Releases, rel)
			outcome.ReleaseID = rel.ID
			outcome.Created = true
		}

		for _, it := range p.Items {
			doc.Items = append(doc.Items, Item{
				ID:            s.newID(),
				ReleaseID:     outcome.ReleaseID,
				Title:         it.Title,
				Description:   it.Description,
				AzureDevopsID: it.AzureDevopsID,
				Component:     it.Component,
				Category:      it.Category,
				UploadBatchID: result.BatchID,
				CreatedAt:     now,
			})
			outcome.Items++
		}

		result.Releases = append(result.Releases, outcome)
	}
	return result
}

// ExistingVersions returns version -> release id for the versions already
// stored.
func (s *Store) ExistingVersions(versions []string) (map[string]string, error) {
	found := make(map[string]string)
	err := s.read(func(doc *document) error {
		for _, v := range versions {
			if r := doc.releaseByVersion(v); r != nil {
				found[v] = r.ID
			}
		}
		return nil
	})
	return found, err
}

// DeleteResult counts rows removed by a delete or rollback.
type DeleteResult struct {
	Releases int
	Items    int
}

// DeleteVersions removes the releases with the given versions and their
// items. Unknown versions are ignored.
func (s *Store) DeleteVersions(versions []string) (DeleteResult, error) {
	want := make(map[string]bool, len(versions))
	for _, v := range versions {
		want[v] = true
	}

	var res DeleteResult
	err := s.update(func(doc *document) error {
		res.Releases, res.Items = doc.removeReleases(func(r Release) bool { return want[r.Version] })
		return nil
	})
	return res, err
}

// RollbackBatch undoes one import: items inserted by the batch are removed,
// and releases it created are removed with all their items.
func (s *Store) RollbackBatch(batchID string) (DeleteResult, error) {
	var res DeleteResult
	err := s.update(func(doc *document) error {
		res.Items = doc.removeItems(func(it Item) bool { return it.UploadBatchID == batchID })
		var cascaded int
		res.Releases, cascaded = doc.removeReleases(func(r Release) bool { return r.UploadBatchID == batchID })
		res.Items += cascaded

		if res.Releases == 0 && res.Items == 0 {
			return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		return nil
	})
	return res, err
}

// Batch describes one upload batch.
type Batch struct {
	ID        string
	Versions  []string
	Items     int
	CreatedAt string
}

// Batches lists upload batches, most recent first.
func (s *Store) Batches() ([]Batch, error) {
	var batches []Batch
	err := s.read(func(doc *document) error {
		byID := make(map[string]*Batch)
		versionOf := make(map[string]string, len(doc.Releases))
		for _, r := range doc.Releases {
			versionOf[r.ID] = r.Version
		}

		get := func(id, created string) *Batch {
			b, ok := byID[id]
			if !ok {
				b = &Batch{ID: id, CreatedAt: created}
				byID[id] = b
			}
			return b
		}
		seen := make(map[string]bool)
		for _, it := range doc.Items {
			b := get(it.UploadBatchID, it.CreatedAt.Format("2006-01-02 15:04:05"))
			b.Items++
			key := it.UploadBatchID + "\x00" + it.ReleaseID
			if !seen[key] {
				seen[key] = true
				b.Versions = append(b.Versions, versionOf[it.ReleaseID])
			}
		}
		for _, r := range doc.Releases {
			b := get(r.UploadBatchID, r.CreatedAt.Format("2006-01-02 15:04:05"))
			key := r.UploadBatchID + "\x00" + r.ID
			if !seen[key] {
				seen[key] = true
				b.Versions = append(b.Versions, r.Version)
			}
		}

		for _, b := range byID {
			batches = append(batches, *b)
		}
		sort.Slice(batches, func(i, j int) bool {
			if batches[i].CreatedAt != batches[j].CreatedAt {
				return batches[i].CreatedAt > batches[j].CreatedAt
			}
			return batches[i].ID < batches[j].ID
		})
		return nil
	})
	return batches, err
}

// SetQuarterly flags or unflags a release as a quarterly release.
func (s *Store) SetQuarterly(version string, quarterly bool) error {
	return s.update(func(doc *document) error {
		r := doc.releaseByVersion(version)
		if r == nil {
			return &VersionNotFoundError{Version: version, AvailableVersions: versionsOf(doc)}
		}
		r.IsQuarterly = quarterly
		return nil
	})
}
