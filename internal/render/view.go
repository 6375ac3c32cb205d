// Package render turns releases into terminal, Markdown, JSON and YAML
// output. Parsed releases and stored releases are both mapped onto one
// view model first so every format treats them the same way.
package render

import (
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
)

// Release is the view model of one release.
type Release struct {
	Version string
	// Date is YYYY-MM-DD.
	Date string
	// Quarter is the "Q<n> <year>" label of a quarterly release.
	Quarter string
	Items   []Item
}

// Item is the view model of one change item.
type Item struct {
	ID          *int
	Title       string
	Description string
	Component   *releasenotes.Component
	Category    *releasenotes.Category
}

// FromParsed maps parser output onto the view model.
func FromParsed(releases []releasenotes.ParsedRelease) []Release {
	out := make([]Release, 0, len(releases))
	for _, r := range releases {
		rel := Release{Version: r.Version, Date: r.Date()}
		for _, it := range r.Items {
			rel.Items = append(rel.Items, Item{
				ID:          it.AzureDevopsID,
				Title:       it.Title,
				Description: it.Description,
				Component:   it.Component,
				Category:    it.Category,
			})
		}
		out = append(out, rel)
	}
	return out
}

// FromStore maps stored releases onto the view model.
func FromStore(views []store.ReleaseView) []Release {
	out := make([]Release, 0, len(views))
	for _, v := range views {
		rel := Release{Version: v.Release.Version, Date: v.Release.ReleaseDate}
		if q, ok := v.Quarter(); ok {
			rel.Quarter = q.Label
		}
		for _, it := range v.Items {
			rel.Items = append(rel.Items, Item{
				ID:          it.AzureDevopsID,
				Title:       it.Title,
				Description: it.Description,
				Component:   it.Component,
				Category:    it.Category,
			})
		}
		out = append(out, rel)
	}
	return out
}

// categoryGroup is the items of one category inside a release.
type categoryGroup struct {
	category *releasenotes.Category
	items    []Item
}

// groupByCategory groups items in the fixed category order; items without
// a category come last.
func groupByCategory(items []Item) []categoryGroup {
	byCat := make(map[releasenotes.Category][]Item)
	var other []Item
	for _, it := range items {
		if it.Category == nil {
			other = append(other, it)
			continue
		}
		byCat[*it.Category] = append(byCat[*it.Category], it)
	}

	var groups []categoryGroup
	for _, c := range releasenotes.ValidCategories() {
		if list, ok := byCat[c]; ok {
			groups = append(groups, categoryGroup{category: &c, items: list})
			delete(byCat, c)
		}
	}
	// Categories outside the known set, e.g. from hand-edited JSON.
	for _, it := range items {
		if it.Category == nil {
			continue
		}
		if list, ok := byCat[*it.Category]; ok {
			groups = append(groups, categoryGroup{category: it.Category, items: list})
			delete(byCat, *it.Category)
		}
	}
	if len(other) > 0 {
		groups = append(groups, categoryGroup{items: other})
	}
	return groups
}

func (g categoryGroup) label() string {
	if g.category == nil {
		return "Other"
	}
	return g.category.Label()
}
