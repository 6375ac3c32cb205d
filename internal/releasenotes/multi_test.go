package releasenotes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeReleaseDoc = twoReleaseDoc + `

--------
22.12.01
--------
214000 Desktop - Add legacy export

--------
1.2.25
--------
214500 Undated entry`

func TestParseMultiple_Text(t *testing.T) {
	report := ParseMultipleWithDiagnostics(threeReleaseDoc)
	assert.False(t, report.FromJSON)

	require.Len(t, report.Releases, 2)
	assert.Equal(t, "25.04.11", report.Releases[0].Version)
	assert.Equal(t, "25.01.17", report.Releases[1].Version)
	require.Len(t, report.Releases[0].Items, 1)
	assert.Equal(t, "Add rate limit headers", report.Releases[0].Items[0].Title)

	require.Len(t, report.Sections, 4)
	dropped := report.Dropped()
	require.Len(t, dropped, 2)

	assert.Equal(t, "22.12.01", dropped[0].Version)
	assert.True(t, dropped[0].BeforeCutoff)
	assert.NoError(t, dropped[0].Err)

	assert.Equal(t, "1.2.25", dropped[1].DateLine)
	assert.True(t, errors.Is(dropped[1].Err, ErrNoReleaseDate))
}

func TestParseMultiple_Idempotent(t *testing.T) {
	assert.Equal(t, ParseMultiple(threeReleaseDoc), ParseMultiple(threeReleaseDoc))
}

func TestParseMultiple_NeverNil(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"no date":      "nothing to see here",
		"empty array":  "[]",
		"only dropped": `{"version":"22.12.01"}`,
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			got := ParseMultiple(text)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

const releaseJSON = `[
  {"version": "25.01.17", "items": [
    {"azureDevopsId": 215139, "title": "Fix LP status", "description": "d", "component": "mobile_web", "category": "bug"}
  ]},
  {"release_date": "2024-03-05", "items": [{"azure_devops_id": 7, "title": "Old-style row"}]},
  {"version": "22.12.01", "items": []},
  {"title": "no date"},
  "not an object"
]`

func TestParseMultiple_JSON(t *testing.T) {
	report := ParseMultipleWithDiagnostics(releaseJSON)
	assert.True(t, report.FromJSON)
	assert.Empty(t, report.Sections)
	assert.Equal(t, 1, report.JSONDropped)
	require.Len(t, report.Releases, 2)

	first := report.Releases[0]
	assert.Equal(t, "25.01.17", first.Version)
	assert.Equal(t, "2025-01-17T00:00:00.000Z", first.ReleaseDate)
	require.Len(t, first.Items, 1)
	assert.Equal(t, intPtr(215139), first.Items[0].AzureDevopsID)
	assert.Equal(t, componentPtr(ComponentMobileWeb), first.Items[0].Component)
	assert.Equal(t, categoryPtr(CategoryBug), first.Items[0].Category)

	second := report.Releases[1]
	assert.Equal(t, "05.03.24", second.Version)
	assert.Equal(t, "2024-03-05T00:00:00.000Z", second.ReleaseDate)
	require.Len(t, second.Items, 1)
	assert.Equal(t, intPtr(7), second.Items[0].AzureDevopsID)
	assert.Nil(t, second.Items[0].Component)
	assert.Nil(t, second.Items[0].Category)
}

func TestParseJSON(t *testing.T) {
	tests := map[string]struct {
		text        string
		wantCount   int
		wantVersion string
		wantErr     bool
	}{
		"single object with long date version": {
			text:        `{"version": "2025-01-17"}`,
			wantCount:   1,
			wantVersion: "25.01.17",
		},
		"releaseDate field": {
			text:        `{"releaseDate": "17.01.2025"}`,
			wantCount:   1,
			wantVersion: "17.01.25",
		},
		"no cutoff applied": {
			text:        `[{"version": "22.12.01"}]`,
			wantCount:   1,
			wantVersion: "22.12.01",
		},
		"malformed": {
			text:    `{"version": `,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseJSON(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantVersion, got[0].Version)
			assert.NotNil(t, got[0].Items)
		})
	}
}

func TestParseMultiple_MalformedJSONFallsBackToText(t *testing.T) {
	text := "{ not json\n--------\n25.01.17\n--------\n215139 Desktop - Add label queue"
	report := ParseMultipleWithDiagnostics(text)
	assert.False(t, report.FromJSON)
	require.Len(t, report.Releases, 1)
	assert.Equal(t, "25.01.17", report.Releases[0].Version)
	require.Len(t, report.Releases[0].Items, 1)
	assert.Equal(t, componentPtr(ComponentDesktop), report.Releases[0].Items[0].Component)
}

func TestBeforeCutoff(t *testing.T) {
	assert.True(t, BeforeCutoff("2023-05-18T00:00:00.000Z"))
	assert.False(t, BeforeCutoff("2023-05-19T00:00:00.000Z"))
	assert.False(t, BeforeCutoff("2025-01-17"))
}
