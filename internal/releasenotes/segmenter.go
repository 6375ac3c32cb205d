package releasenotes

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	itemHeaderPattern   = regexp.MustCompile(`^(\d{4,9})\s+(.+)$`)
	metadataLinePattern = regexp.MustCompile(`(?i)^id\s*:\s*(\d{3,9})(?:\s*\|\s*component\s*:\s*([^|]+))?(?:\s*\|\s*category\s*:\s*([^|]+))?`)
	metadataPrefix      = regexp.MustCompile(`(?i)^id\s*:`)
	componentSeparator  = regexp.MustCompile(`\s+-\s+`)
)

// untitled is the title of a metadata item with no usable line above it.
const untitled = "Untitled"

// SegmentState is the state of the item accumulator.
type SegmentState int

const (
	// StateNoItem means no item is open; content lines are discarded.
	StateNoItem SegmentState = iota
	// StateInItem means content lines extend the open item's description.
	StateInItem
)

// LineKind classifies a line as a segmenter trigger.
type LineKind int

const (
	LineBlank LineKind = iota
	LineDate
	LineItemHeader
	LineMetadata
	LineContent
)

// String returns a short name for the line kind.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineDate:
		return "date"
	case LineItemHeader:
		return "item-header"
	case LineMetadata:
		return "metadata"
	default:
		return "content"
	}
}

// ClassifyLine returns the trigger a single line fires in the segmenter.
// Dash rules count as blank.
func ClassifyLine(line string) LineKind {
	t := strings.TrimSpace(line)
	switch {
	case t == "" || dashRulePattern.MatchString(t):
		return LineBlank
	case isDateLine(t):
		return LineDate
	case itemHeaderPattern.MatchString(t):
		return LineItemHeader
	case metadataLinePattern.MatchString(t):
		return LineMetadata
	default:
		return LineContent
	}
}

// itemDraft is the mutable form of an item while its lines are collected.
type itemDraft struct {
	id          *int
	title       string
	description strings.Builder
	component   *Component
	category    *Category
}

// freeze finishes the draft: trims the description and fills in the
// classifications metadata did not provide.
func (d *itemDraft) freeze() ParsedItem {
	item := ParsedItem{
		AzureDevopsID: d.id,
		Title:         d.title,
		Description:   strings.TrimSpace(d.description.String()),
		Component:     d.component,
		Category:      d.category,
	}
	if item.Component == nil {
		item.Component = DetectComponent(item.Title + "\n" + item.Description)
	}
	if item.Category == nil {
		item.Category = DetectCategory(item.Title, item.Description)
	}
	return item
}

// segmenter is the line-driven item accumulator. Transitions:
//
//	NoItem --header/metadata--> InItem
//	InItem --header/metadata--> flush, InItem
//	InItem --date/end---------> flush, NoItem
//	InItem --content----------> InItem (description grows)
//	NoItem --content/date-----> NoItem
type segmenter struct {
	lines   []string
	state   SegmentState
	current *itemDraft
	items   []ParsedItem
}

func newSegmenter(lines []string) *segmenter {
	return &segmenter{lines: lines, items: []ParsedItem{}}
}

// segmentItems runs the segmenter over normalized lines.
func segmentItems(lines []string) []ParsedItem {
	s := newSegmenter(lines)
	for i := range lines {
		s.feed(i)
	}
	s.end()
	return s.items
}

// feed consumes line i.
func (s *segmenter) feed(i int) {
	raw := s.lines[i]
	line := strings.TrimSpace(raw)

	switch ClassifyLine(raw) {
	case LineBlank:
	case LineDate:
		s.flush()
	case LineItemHeader:
		s.flush()
		s.open(itemFromHeader(line))
	case LineMetadata:
		s.flush()
		s.open(s.itemFromMetadata(i, line))
	case LineContent:
		s.appendContent(raw)
	}
}

// end flushes the open item at end of input.
func (s *segmenter) end() {
	s.flush()
}

func (s *segmenter) open(d *itemDraft) {
	s.current = d
	s.state = StateInItem
}

func (s *segmenter) appendContent(raw string) {
	if s.state != StateInItem {
		return
	}
	if s.current.description.Len() > 0 {
		s.current.description.WriteByte('\n')
	}
	s.current.description.WriteString(raw)
}

func (s *segmenter) flush() {
	if s.state != StateInItem {
		return
	}
	s.items = append(s.items, s.current.freeze())
	s.current = nil
	s.state = StateNoItem
}

// itemFromHeader builds a draft from "<id> [<component> - ]<title>".
func itemFromHeader(line string) *itemDraft {
	m := itemHeaderPattern.FindStringSubmatch(line)
	rest := m[2]
	d := &itemDraft{id: parseID(m[1]), title: strings.TrimSpace(rest)}

	parts := componentSeparator.Split(rest, -1)
	if len(parts) >= 2 {
		if c := DetectComponent(parts[0]); c != nil {
			d.component = c
			d.title = strings.TrimSpace(strings.Join(parts[1:], " - "))
		}
	}
	return d
}

// itemFromMetadata builds a draft from "id: N | component: X | category: Y".
// The title is the closest non-empty line above it.
func (s *segmenter) itemFromMetadata(i int, line string) *itemDraft {
	m := metadataLinePattern.FindStringSubmatch(line)
	d := &itemDraft{
		id:       parseID(m[1]),
		title:    s.titleAbove(i),
		category: categoryFromLabel(strings.TrimSpace(m[3])),
	}
	if comp := strings.TrimSpace(m[2]); comp != "" {
		d.component = DetectComponent(comp)
	}
	return d
}

// titleAbove walks back from line i to the nearest content line. Another
// metadata line, a release token or a dash rule ends the walk.
func (s *segmenter) titleAbove(i int) string {
	for j := i - 1; j >= 0; j-- {
		t := strings.TrimSpace(s.lines[j])
		if t == "" {
			continue
		}
		if metadataPrefix.MatchString(t) || isDateLine(t) || dashRulePattern.MatchString(t) {
			break
		}
		return t
	}
	return untitled
}

func parseID(digits string) *int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}
