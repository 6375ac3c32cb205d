package releasenotes

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout names the field order a date token was read in.
type Layout int

const (
	// LayoutYearMonthDay is yyyy.mm.dd.
	LayoutYearMonthDay Layout = iota + 1
	// LayoutDayMonthYear is dd.mm.yyyy, or dd/mm/yy for slash tokens.
	LayoutDayMonthYear
	// LayoutMonthDayYear is mm.dd.yyyy, or mm/dd/yy for slash tokens.
	LayoutMonthDayYear
	// LayoutShortYearFirst is yy.mm.dd.
	LayoutShortYearFirst
	// LayoutShortYearLast is dd.mm.yy.
	LayoutShortYearLast
)

// String returns the layout as a field pattern.
func (l Layout) String() string {
	switch l {
	case LayoutYearMonthDay:
		return "yyyy.mm.dd"
	case LayoutDayMonthYear:
		return "dd.mm.yyyy"
	case LayoutMonthDayYear:
		return "mm.dd.yyyy"
	case LayoutShortYearFirst:
		return "yy.mm.dd"
	case LayoutShortYearLast:
		return "dd.mm.yy"
	default:
		return "unknown"
	}
}

// DateToken is the resolved reading of a numeric date/version token.
type DateToken struct {
	// Time is the calendar date at UTC midnight.
	Time time.Time
	// Version is the canonical short version string, e.g. "25.01.17".
	Version string
	// Layout is the field order the token was read in.
	Layout Layout
	// Ambiguous is set when another reading of the same digits was also
	// plausible and a default tie-break picked this one.
	Ambiguous bool
}

// ISO returns the date as an RFC 3339 UTC timestamp with milliseconds.
func (d DateToken) ISO() string {
	return formatISO(d.Time)
}

var (
	longYearFirstPattern = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
	longYearLastPattern  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	shortTriplePattern   = regexp.MustCompile(`^(\d{2})[./-](\d{2})[./-](\d{2})$`)
	slashDatePattern     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
)

// ParseDateToken reads a token such as "25.01.17", "17.01.2025",
// "2025-01-17" or "1/17/25" and returns its calendar date and canonical
// version. The second return value is false when the token has none of the
// recognized shapes.
//
// Resolution rules:
//   - yyyy.mm.dd is unambiguous; the version drops the century.
//   - d.m.yyyy: a field above 12 is the day, otherwise day-first.
//   - yy.mm.dd vs dd.mm.yy: a leading 20-39 with a valid month/day is
//     year-first, a trailing 20-39 is year-last, otherwise year-first when
//     the month/day are valid and day-first when they are not.
//   - m/d/yy and d/m/yyyy: a field above 12 is the day, otherwise day-first.
//
// Fully ambiguous triples (05.06.07) resolve by these defaults and carry
// Ambiguous=true. The defaults differ between shapes on purpose.
func ParseDateToken(token string) (DateToken, bool) {
	t := strings.TrimSpace(token)

	if m := longYearFirstPattern.FindStringSubmatch(t); m != nil {
		yyyy, mm, dd := atoi(m[1]), atoi(m[2]), atoi(m[3])
		return DateToken{
			Time:    utcDate(yyyy, mm, dd),
			Version: joinVersion(shortYear(yyyy), pad2(mm), pad2(dd)),
			Layout:  LayoutYearMonthDay,
		}, true
	}

	if m := longYearLastPattern.FindStringSubmatch(t); m != nil {
		a, b, yyyy := atoi(m[1]), atoi(m[2]), atoi(m[3])
		return dayMonthToken(a, b, yyyy), true
	}

	if m := shortTriplePattern.FindStringSubmatch(t); m != nil {
		return shortTripleToken(m[1], m[2], m[3]), true
	}

	if m := slashDatePattern.FindStringSubmatch(t); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		yyyy := atoi(m[3])
		if len(m[3]) == 2 {
			yyyy += 2000
		}
		return dayMonthToken(a, b, yyyy), true
	}

	return DateToken{}, false
}

// dayMonthToken resolves a day/month pair with a full year using the >12
// rule and a day-first default.
func dayMonthToken(a, b, yyyy int) DateToken {
	dd, mm := a, b
	layout := LayoutDayMonthYear
	ambiguous := false

	switch {
	case a > 12 && b <= 12:
	case b > 12 && a <= 12:
		dd, mm = b, a
		layout = LayoutMonthDayYear
	default:
		ambiguous = a != b
	}

	return DateToken{
		Time:      utcDate(yyyy, mm, dd),
		Version:   joinVersion(pad2(dd), pad2(mm), shortYear(yyyy)),
		Layout:    layout,
		Ambiguous: ambiguous,
	}
}

// shortTripleToken resolves a two-digit triple as yy.mm.dd or dd.mm.yy.
func shortTripleToken(sa, sb, sc string) DateToken {
	a, b, c := atoi(sa), atoi(sb), atoi(sc)
	monthOK := b >= 1 && b <= 12

	if inYearRange(a) && monthOK && c >= 1 && c <= 31 {
		return DateToken{
			Time:    utcDate(2000+a, b, c),
			Version: joinVersion(sa, sb, sc),
			Layout:  LayoutShortYearFirst,
			// 25.01.24 also reads as 25 Jan 2024.
			Ambiguous: inYearRange(c) && a <= 31,
		}
	}

	if inYearRange(c) && monthOK && a >= 1 && a <= 31 {
		return DateToken{
			Time:    utcDate(2000+c, b, a),
			Version: joinVersion(sa, sb, sc),
			Layout:  LayoutShortYearLast,
		}
	}

	if monthOK && c >= 1 && c <= 31 {
		return DateToken{
			Time:      utcDate(2000+a, b, c),
			Version:   joinVersion(sa, sb, sc),
			Layout:    LayoutShortYearFirst,
			Ambiguous: true,
		}
	}

	return DateToken{
		Time:      utcDate(2000+c, b, a),
		Version:   joinVersion(sa, sb, sc),
		Layout:    LayoutShortYearLast,
		Ambiguous: true,
	}
}

func inYearRange(n int) bool {
	return n >= 20 && n <= 39
}

// utcDate builds a UTC midnight date. Out-of-range months and days roll
// over into the neighbouring month or year.
func utcDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// shortYear keeps the last two digits of a year.
func shortYear(year int) string {
	s := strconv.Itoa(year)
	if len(s) > 2 {
		return s[len(s)-2:]
	}
	return s
}

func joinVersion(parts ...string) string {
	return strings.Join(parts, ".")
}
