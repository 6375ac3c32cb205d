package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := WrapWithMessage(cause, Runtime, "saving store")
	assert.Equal(t, "saving store: disk full", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ignored"))
}

func TestAsCLIError_FindsWrapped(t *testing.T) {
	t.Parallel()

	inner := UnknownBatch("abc")
	wrapped := fmt.Errorf("rollback: %w", inner)

	got := AsCLIError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, Argument, got.Category)
	assert.True(t, IsCLIError(wrapped))
	assert.False(t, IsCLIError(stderrors.New("plain")))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantContains []string
		wantMissing  []string
	}{
		"message and remediation": {
			err: MissingInputFile("notes.txt"),
			wantContains: []string{
				"Error [Prerequisite Error]: release notes file not found: notes.txt",
				"To fix this:",
				"  • Check the path",
			},
			wantMissing: []string{"Usage:"},
		},
		"usage line": {
			err:          InvalidOutputFormat("xml", []string{"table", "json"}),
			wantContains: []string{"Usage: relnotes <command> --format table|json"},
		},
		"dropped count": {
			err:          NoReleasesDetected("notes.txt", 2),
			wantContains: []string{"no releases detected in notes.txt (2 section(s) dropped)"},
		},
		"bare message": {
			err:          &CLIError{Category: Runtime, Message: "boom"},
			wantContains: []string{"Error [Runtime Error]: boom\n"},
			wantMissing:  []string{"To fix this:"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := FormatErrorPlain(tt.err)
			for _, s := range tt.wantContains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestFprint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("socket closed"), true)
	assert.Equal(t, "Error [Runtime Error]: socket closed\n", buf.String())

	buf.Reset()
	Fprint(&buf, nil, true)
	assert.Empty(t, buf.String())
}

func TestUnknownVersion_Hint(t *testing.T) {
	t.Parallel()

	assert.Contains(t, FormatErrorPlain(UnknownVersion("25.01.17", nil)), "The store is empty")
	assert.Contains(t, FormatErrorPlain(UnknownVersion("25.01.17", []string{"25.04.11"})), "Available versions: 25.04.11")
}
