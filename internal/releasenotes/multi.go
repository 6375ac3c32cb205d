package releasenotes

import "strings"

// CutoffDate is the earliest release date (YYYY-MM-DD) kept by
// ParseMultiple. Older releases are removed from its output.
const CutoffDate = "2023-05-19"

// BeforeCutoff reports whether an ISO release date falls before CutoffDate.
func BeforeCutoff(releaseDate string) bool {
	day := releaseDate
	if len(day) > 10 {
		day = day[:10]
	}
	return day < CutoffDate
}

// SectionDiagnostic explains what happened to one section of a
// multi-release document.
type SectionDiagnostic struct {
	HeaderIndex int
	DateLine    string
	// Version is set when the section parsed.
	Version string
	// Err is set when the section could not be parsed.
	Err error
	// BeforeCutoff is set when the section parsed but was filtered out.
	BeforeCutoff bool
}

// Dropped reports whether the section is missing from the releases.
func (d SectionDiagnostic) Dropped() bool {
	return d.Err != nil || d.BeforeCutoff
}

// Report is the outcome of a multi-release parse.
type Report struct {
	// Releases holds the parsed releases on or after CutoffDate, in
	// document order.
	Releases []ParsedRelease
	// Sections has one entry per section for text input; it is empty for
	// JSON input.
	Sections []SectionDiagnostic
	// FromJSON is set when the input was ingested structurally.
	FromJSON bool
	// JSONDropped counts JSON releases removed by the cutoff.
	JSONDropped int
}

// Dropped returns the diagnostics of sections that did not make it into
// the releases.
func (r *Report) Dropped() []SectionDiagnostic {
	var dropped []SectionDiagnostic
	for _, s := range r.Sections {
		if s.Dropped() {
			dropped = append(dropped, s)
		}
	}
	return dropped
}

// ParseMultiple parses a document holding any number of releases, as text
// or JSON. Sections that fail to parse and releases before CutoffDate are
// left out; it never fails.
func ParseMultiple(text string) []ParsedRelease {
	return ParseMultipleWithDiagnostics(text).Releases
}

// ParseMultipleWithDiagnostics is ParseMultiple with a per-section account
// of what was kept and why the rest was dropped.
func ParseMultipleWithDiagnostics(text string) *Report {
	if looksLikeJSON(strings.TrimSpace(text)) {
		if releases, err := ParseJSON(strings.TrimSpace(text)); err == nil {
			report := &Report{Releases: make([]ParsedRelease, 0, len(releases)), FromJSON: true}
			for _, r := range releases {
				if BeforeCutoff(r.ReleaseDate) {
					report.JSONDropped++
					continue
				}
				report.Releases = append(report.Releases, r)
			}
			return report
		}
	}

	sections := ExtractSections(text)
	report := &Report{
		Releases: make([]ParsedRelease, 0, len(sections)),
		Sections: make([]SectionDiagnostic, 0, len(sections)),
	}
	for _, s := range sections {
		diag := SectionDiagnostic{HeaderIndex: s.HeaderIndex, DateLine: s.DateLine}
		rel, err := ParseRelease(s.Text)
		switch {
		case err != nil:
			diag.Err = err
		case BeforeCutoff(rel.ReleaseDate):
			diag.Version = rel.Version
			diag.BeforeCutoff = true
		default:
			diag.Version = rel.Version
			report.Releases = append(report.Releases, *rel)
		}
		report.Sections = append(report.Sections, diag)
	}
	return report
}
