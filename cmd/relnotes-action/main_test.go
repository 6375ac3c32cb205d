package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeDropped(t *testing.T) {
	tests := map[string]struct {
		diag releasenotes.SectionDiagnostic
		want string
	}{
		"parse error": {
			diag: releasenotes.SectionDiagnostic{HeaderIndex: 4, DateLine: "31.31.31", Err: errors.New("bad date")},
			want: "line 5 31.31.31: bad date",
		},
		"before cutoff": {
			diag: releasenotes.SectionDiagnostic{HeaderIndex: 0, DateLine: "22.12.01", Version: "22.12.01", BeforeCutoff: true},
			want: "line 1 22.12.01: 22.12.01 is before 2023-05-19",
		},
		"fallback section": {
			diag: releasenotes.SectionDiagnostic{Err: releasenotes.ErrNoReleaseDate},
			want: "line 1 (no header): unable to parse release date/version",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeDropped(tt.diag))
		})
	}
}

func TestRenderReleases(t *testing.T) {
	id := 215139
	comp := releasenotes.ComponentMobileWeb
	releases := []releasenotes.ParsedRelease{{
		Version:     "25.04.11",
		ReleaseDate: "2025-04-11T00:00:00.000Z",
		Items:       []releasenotes.ParsedItem{{AzureDevopsID: &id, Title: "Scanner freeze", Component: &comp}},
	}}

	out, err := renderReleases("json", releases)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"version\": \"25.04.11\""))

	out, err = renderReleases("markdown", releases)
	require.NoError(t, err)
	assert.Contains(t, out, "## 25.04.11 (2025-04-11)")
	assert.Contains(t, out, "**215139** Scanner freeze _(Mobile Web)_")
}
