package releasenotes

import (
	"regexp"
	"strings"
)

type componentSynonym struct {
	key       string
	component Component
	pattern   *regexp.Regexp
}

// componentSynonyms is checked in order; the first whole-word hit wins.
var componentSynonyms = newSynonymTable([]struct {
	key       string
	component Component
}{
	{"html5 portal", ComponentHTML5Portal},
	{"portal", ComponentHTML5Portal},
	{"mobile web", ComponentMobileWeb},
	{"mobile", ComponentMobileWeb},
	{"desktop", ComponentDesktop},
	{"client", ComponentDesktop},
	{"api", ComponentAPI},
	{"rest api", ComponentAPI},
})

func newSynonymTable(entries []struct {
	key       string
	component Component
}) []componentSynonym {
	table := make([]componentSynonym, 0, len(entries))
	for _, e := range entries {
		table = append(table, componentSynonym{
			key:       e.key,
			component: e.component,
			pattern:   regexp.MustCompile(`(?i)(^|\W)` + regexp.QuoteMeta(e.key) + `(\W|$)`),
		})
	}
	return table
}

var (
	bugKeywords            = regexp.MustCompile(`(?i)(bug|fix|fixed|error|issue|defect|hotfix)`)
	implementationKeywords = regexp.MustCompile(`(?i)(implement|implementation|feature|add|support|enable)`)
	coreKeywords           = regexp.MustCompile(`(?i)(core|refactor|performance|optimi[sz]e|infra|architecture)`)

	metaBugKeywords            = regexp.MustCompile(`bug|fix`)
	metaImplementationKeywords = regexp.MustCompile(`implement|feature`)
	metaCoreKeywords           = regexp.MustCompile(`core|refactor|perf|infra`)
)

// DetectComponent maps free text to a component using the synonym table.
// Underscores count as spaces so enum values like "mobile_web" resolve too.
// Returns nil when no synonym occurs as a whole word.
func DetectComponent(text string) *Component {
	n := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(text, "_", " ")))
	for _, syn := range componentSynonyms {
		if syn.pattern.MatchString(n) {
			c := syn.component
			return &c
		}
	}
	return nil
}

// DetectCategory triages an item by keyword. Bug keywords are checked
// first, so "fix the feature flag" is a bug.
func DetectCategory(title, description string) *Category {
	blob := title + "\n" + description
	var c Category
	switch {
	case bugKeywords.MatchString(blob):
		c = CategoryBug
	case implementationKeywords.MatchString(blob):
		c = CategoryImplementation
	case coreKeywords.MatchString(blob):
		c = CategoryCoreDevelopment
	default:
		return nil
	}
	return &c
}

// categoryFromLabel reads the category value of a metadata line.
func categoryFromLabel(label string) *Category {
	n := strings.ToLower(label)
	var c Category
	switch {
	case n == "":
		return nil
	case metaBugKeywords.MatchString(n):
		c = CategoryBug
	case metaImplementationKeywords.MatchString(n):
		c = CategoryImplementation
	case metaCoreKeywords.MatchString(n):
		c = CategoryCoreDevelopment
	default:
		return nil
	}
	return &c
}
