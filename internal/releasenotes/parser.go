package releasenotes

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrNoReleaseDate is returned when no date/version token can be found
// anywhere in a release's text.
var ErrNoReleaseDate = errors.New("unable to parse release date/version")

const (
	// headerScanLines bounds the first header resolution phase.
	headerScanLines = 100
	// headerMaxLen is the longest line still considered a header.
	headerMaxLen = 20
)

// inlineTokenPatterns are tried in order by the last-resort phase; the last
// match of the first pattern that yields a date wins.
var inlineTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}[./-]\d{2}[./-]\d{2}(?:\d{2})?\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[./-]\d{1,2}[./-]\d{1,2}\b`),
}

// ParseRelease parses the text of a single release. It resolves the
// release header first and then segments the remaining lines into items.
// Returns ErrNoReleaseDate when no date token can be recognized.
func ParseRelease(text string) (*ParsedRelease, error) {
	lines := normalizeLines(text)

	token, ok := resolveHeader(lines)
	if !ok {
		return nil, ErrNoReleaseDate
	}

	return &ParsedRelease{
		Version:     token.Version,
		ReleaseDate: token.ISO(),
		Items:       segmentItems(lines),
	}, nil
}

// resolveHeader finds the release date token. Phases, first success wins:
//  1. the first short header-like line near the top,
//  2. the last standalone token line anywhere,
//  3. the last date-like substring anywhere.
func resolveHeader(lines []string) (DateToken, bool) {
	if tok, ok := headerNearTop(lines); ok {
		return tok, true
	}
	if tok, ok := lastStandaloneToken(lines); ok {
		return tok, true
	}
	return lastInlineToken(strings.Join(lines, "\n"))
}

// headerNearTop only considers the first candidate line; inline tokens
// further down are less trustworthy than an early header.
func headerNearTop(lines []string) (DateToken, bool) {
	limit := min(len(lines), headerScanLines)
	for i := 0; i < limit; i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || utf8.RuneCountInString(l) > headerMaxLen {
			continue
		}
		if m := labeledTokenLine.FindStringSubmatch(l); m != nil {
			return ParseDateToken(m[1])
		}
		if isDateLine(l) {
			return ParseDateToken(l)
		}
	}
	return DateToken{}, false
}

func lastStandaloneToken(lines []string) (DateToken, bool) {
	last := ""
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if l != "" && isDateLine(l) {
			last = l
		}
	}
	if last == "" {
		return DateToken{}, false
	}
	return ParseDateToken(last)
}

func lastInlineToken(blob string) (DateToken, bool) {
	for _, re := range inlineTokenPatterns {
		matches := re.FindAllString(blob, -1)
		if len(matches) == 0 {
			continue
		}
		if tok, ok := ParseDateToken(matches[len(matches)-1]); ok {
			return tok, true
		}
	}
	return DateToken{}, false
}
