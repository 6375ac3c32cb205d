package releasenotes

import (
	"regexp"
	"strings"
)

// sectionHeaderPattern is looser than the release token: single-digit day
// and month fields are accepted for section boundaries.
var sectionHeaderPattern = regexp.MustCompile(`^(?:\d{1,2}[./-]\d{1,2}[./-]\d{2}(?:\d{2})?|\d{4}[./-]\d{1,2}[./-]\d{1,2})$`)

// Section is the text of one release cut out of a multi-release document.
type Section struct {
	// HeaderIndex is the line index of the release header, 0 for the
	// single-section fallback.
	HeaderIndex int
	// DateLine is the trimmed header line, empty for the fallback.
	DateLine string
	// Text is "<header>\n<body>", ready for ParseRelease.
	Text string
}

// ExtractSections splits a document holding several releases. A line that
// is only a date token counts as a release header when a dash rule sits
// directly above or below it. With no headers the whole input becomes one
// section.
func ExtractSections(text string) []Section {
	lines := normalizeLines(text)
	headers := findSectionHeaders(lines)

	if len(headers) == 0 {
		return []Section{{HeaderIndex: 0, Text: text}}
	}

	sections := make([]Section, 0, len(headers))
	for h, idx := range headers {
		next := len(lines)
		if h+1 < len(headers) {
			next = headers[h+1]
		}

		start := idx + 1
		if start < len(lines) && isDashRule(lines[start]) {
			start++
		}
		// A dash rule owned by the next header may end up in this body;
		// ParseRelease skips dash rules, so it is left in place.
		var body string
		if start < next {
			body = strings.Join(lines[start:next], "\n")
		}

		dateLine := strings.TrimSpace(lines[idx])
		sections = append(sections, Section{
			HeaderIndex: idx,
			DateLine:    dateLine,
			Text:        strings.TrimSpace(dateLine + "\n" + body),
		})
	}
	return sections
}

func findSectionHeaders(lines []string) []int {
	var headers []int
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if l == "" || !sectionHeaderPattern.MatchString(l) {
			continue
		}
		dashAbove := i > 0 && isDashRule(lines[i-1])
		dashBelow := i+1 < len(lines) && isDashRule(lines[i+1])
		if dashAbove || dashBelow {
			headers = append(headers, i)
		}
	}
	return headers
}
