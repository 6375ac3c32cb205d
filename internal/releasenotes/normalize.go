package releasenotes

import (
	"regexp"
	"strings"
)

var textNormalizer = strings.NewReplacer(
	"\r\n", "\n",
	"\u2013", "-",
	"\u2014", "-",
	"\u00a0", " ",
)

// releaseTokenExpr matches a bare release header token: dd.mm.yy,
// yy.mm.dd, dd.mm.yyyy or yyyy.mm.dd with any of the . / - separators.
const releaseTokenExpr = `(?:\d{2}[./-]\d{2}[./-]\d{2}(?:\d{2})?|\d{4}[./-]\d{2}[./-]\d{2})`

var (
	dashRulePattern  = regexp.MustCompile(`^-+$`)
	dateLinePattern  = regexp.MustCompile(`^` + releaseTokenExpr + `$`)
	labeledTokenLine = regexp.MustCompile(`(?i)^(?:version|release|footprint\s*version)\s*[:\-]?\s*(` + releaseTokenExpr + `)$`)
)

// normalizeLines folds line endings, unicode dashes and non-breaking spaces
// and splits the text into lines.
func normalizeLines(text string) []string {
	return strings.Split(textNormalizer.Replace(text), "\n")
}

// isDashRule reports whether the line is a visual separator made of hyphens.
func isDashRule(line string) bool {
	return dashRulePattern.MatchString(strings.TrimSpace(line))
}

// isDateLine reports whether an already trimmed line is nothing but a
// release token.
func isDateLine(trimmed string) bool {
	return dateLinePattern.MatchString(trimmed)
}
