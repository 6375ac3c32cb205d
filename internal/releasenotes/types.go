package releasenotes

import "time"

// Component identifies the product surface a change item belongs to.
type Component string

const (
	ComponentMobileWeb   Component = "mobile_web"
	ComponentDesktop     Component = "desktop"
	ComponentAPI         Component = "api"
	ComponentHTML5Portal Component = "html5_portal"
)

// Category is the triage bucket of a change item.
type Category string

const (
	CategoryBug             Category = "bug"
	CategoryCoreDevelopment Category = "core_development"
	CategoryImplementation  Category = "implementation"
)

// ValidComponents returns the known components in display order.
func ValidComponents() []Component {
	return []Component{ComponentMobileWeb, ComponentDesktop, ComponentAPI, ComponentHTML5Portal}
}

// ValidCategories returns the known categories in display order.
func ValidCategories() []Category {
	return []Category{CategoryBug, CategoryImplementation, CategoryCoreDevelopment}
}

// Label is the human-readable component name.
func (c Component) Label() string {
	switch c {
	case ComponentMobileWeb:
		return "Mobile Web"
	case ComponentDesktop:
		return "Desktop"
	case ComponentAPI:
		return "API"
	case ComponentHTML5Portal:
		return "HTML5 Portal"
	default:
		return string(c)
	}
}

// Label is the human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryBug:
		return "Bug Fixes"
	case CategoryCoreDevelopment:
		return "Core Development"
	case CategoryImplementation:
		return "Implementation"
	default:
		return string(c)
	}
}

// ParsedRelease is one release recovered from changelog text.
// The JSON field names double as the export schema and must not change.
type ParsedRelease struct {
	Version     string       `json:"version" yaml:"version"`
	ReleaseDate string       `json:"releaseDate" yaml:"releaseDate"`
	Items       []ParsedItem `json:"items" yaml:"items"`
}

// ParsedItem is a single change entry inside a release.
// Nil pointers mean "unknown" and serialize as JSON null.
type ParsedItem struct {
	AzureDevopsID *int       `json:"azureDevopsId" yaml:"azureDevopsId"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	Component     *Component `json:"component" yaml:"component"`
	Category      *Category  `json:"category" yaml:"category"`
}

// Date returns the YYYY-MM-DD part of the release date.
func (r ParsedRelease) Date() string {
	if len(r.ReleaseDate) < 10 {
		return r.ReleaseDate
	}
	return r.ReleaseDate[:10]
}

// Time parses ReleaseDate back into a UTC time.
func (r ParsedRelease) Time() (time.Time, error) {
	return time.Parse(isoLayout, r.ReleaseDate)
}

// isoLayout renders UTC timestamps with millisecond precision and a Z suffix.
const isoLayout = "2006-01-02T15:04:05.000Z"

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
