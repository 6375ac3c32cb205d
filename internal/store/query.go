package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	if len(e.AvailableVersions) == 0 {
		return fmt.Sprintf("version %q not found (store is empty)", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// Quarter labels a release flagged as quarterly.
type Quarter struct {
	Quarter int
	Year    int
	Label   string
}

// QuarterInfo returns the quarter of a release flagged as quarterly. The
// quarter comes from the release date; unflagged or undated releases have
// none.
func QuarterInfo(r Release) (Quarter, bool) {
	if !r.IsQuarterly || r.ReleaseDate == "" {
		return Quarter{}, false
	}
	day, err := time.Parse(time.DateOnly, r.ReleaseDate)
	if err != nil {
		return Quarter{}, false
	}
	q := (int(day.Month())-1)/3 + 1
	return Quarter{
		Quarter: q,
		Year:    day.Year(),
		Label:   fmt.Sprintf("Q%d %d", q, day.Year()),
	}, true
}

// ReleaseView is a release joined with its items.
type ReleaseView struct {
	Release Release `yaml:"release" json:"release"`
	Items   []Item  `yaml:"items" json:"items"`
}

// Quarter returns the quarter label of the release, if flagged.
func (v ReleaseView) Quarter() (Quarter, bool) {
	return QuarterInfo(v.Release)
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Component string
	Category  string
	Version   string
	// Text is split into terms; every term must occur (case-insensitive)
	// in the title or, unless TitlesOnly, the description.
	Text       string
	TitlesOnly bool
	// Since keeps releases dated on or after this YYYY-MM-DD day.
	Since string
	// Last keeps only the N newest releases after filtering (0 = all).
	Last int
}

func (f Filter) itemFilterSet() bool {
	return f.Component != "" || f.Category != "" || strings.TrimSpace(f.Text) != ""
}

func (f Filter) matchItem(it Item, terms []string) bool {
	if f.Component != "" && (it.Component == nil || string(*it.Component) != f.Component) {
		return false
	}
	if f.Category != "" && (it.Category == nil || string(*it.Category) != f.Category) {
		return false
	}
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(it.Title)
	if !f.TitlesOnly {
		haystack += "\n" + strings.ToLower(it.Description)
	}
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func (f Filter) matchRelease(r Release) bool {
	if f.Version != "" && r.Version != f.Version {
		return false
	}
	if f.Since != "" && r.ReleaseDate < f.Since {
		return false
	}
	return true
}

// searchTerms lowercases and de-duplicates the words of a query.
func searchTerms(text string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(text)) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// List returns releases with their items, newest first. When an item
// filter is set, only matching items are kept and releases left without
// items are omitted.
func (s *Store) List(f Filter) ([]ReleaseView, error) {
	var views []ReleaseView
	err := s.read(func(doc *document) error {
		views = join(doc, f)
		return nil
	})
	return views, err
}

func join(doc *document, f Filter) []ReleaseView {
	terms := searchTerms(f.Text)
	byRelease := make(map[string][]Item)
	for _, it := range doc.Items {
		if f.matchItem(it, terms) {
			byRelease[it.ReleaseID] = append(byRelease[it.ReleaseID], it)
		}
	}

	views := make([]ReleaseView, 0, len(doc.Releases))
	for _, r := range doc.Releases {
		if !f.matchRelease(r) {
			continue
		}
		items := byRelease[r.ID]
		if f.itemFilterSet() && len(items) == 0 {
			continue
		}
		if items == nil {
			items = []Item{}
		}
		views = append(views, ReleaseView{Release: r, Items: items})
	}

	sortNewestFirst(views)
	if f.Last > 0 && len(views) > f.Last {
		views = views[:f.Last]
	}
	return views
}

func sortNewestFirst(views []ReleaseView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Release, views[j].Release
		if a.ReleaseDate != b.ReleaseDate {
			return a.ReleaseDate > b.ReleaseDate
		}
		return a.Version > b.Version
	})
}

// GetVersion returns one release with all its items. Returns
// *VersionNotFoundError listing the stored versions when it is missing.
func (s *Store) GetVersion(version string) (*ReleaseView, error) {
	var view *ReleaseView
	err := s.read(func(doc *document) error {
		views := join(doc, Filter{Version: version})
		if len(views) == 0 {
			return &VersionNotFoundError{Version: version, AvailableVersions: versionsOf(doc)}
		}
		view = &views[0]
		return nil
	})
	return view, err
}

// ListVersions returns stored versions, newest first.
func (s *Store) ListVersions() ([]string, error) {
	var versions []string
	err := s.read(func(doc *document) error {
		versions = versionsOf(doc)
		return nil
	})
	return versions, err
}

func versionsOf(doc *document) []string {
	views := join(doc, Filter{})
	versions := make([]string, len(views))
	for i, v := range views {
		versions[i] = v.Release.Version
	}
	return versions
}

// Stats counts stored rows.
type Stats struct {
	Releases int
	Items    int
	Batches  int
}

// Stats returns row counts.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.read(func(doc *document) error {
		batches := make(map[string]bool)
		for _, r := range doc.Releases {
			batches[r.UploadBatchID] = true
		}
		for _, it := range doc.Items {
			batches[it.UploadBatchID] = true
		}
		st = Stats{Releases: len(doc.Releases), Items: len(doc.Items), Batches: len(batches)}
		return nil
	})
	return st, err
}
