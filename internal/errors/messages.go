package errors

import (
	"fmt"
	"strings"
)

// MissingInputFile is returned when a release-notes file cannot be read.
func MissingInputFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("release notes file not found: %s", path),
		"Check the path and that the file is readable",
		"Paste the notes into a file first, e.g. relnotes parse notes.txt",
	)
}

// NoReleasesDetected is returned when parsing found nothing worth keeping.
func NoReleasesDetected(source string, dropped int) *CLIError {
	msg := fmt.Sprintf("no releases detected in %s", source)
	if dropped > 0 {
		msg = fmt.Sprintf("%s (%d section(s) dropped)", msg, dropped)
	}
	return NewRuntimeError(
		msg,
		"Each release needs a date header such as 25.01.17 or 2025-01-17",
		"Releases before 2023-05-19 are ignored",
		"Run with --verbose to see why each section was dropped",
	)
}

// StoreUnavailable wraps a failure to open or write the release store.
func StoreUnavailable(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("release store unavailable at %s", path),
		"Check that the directory exists and is writable",
		"Point store_path at another file: RELNOTES_STORE_PATH=./store.yml",
	)
}

// MissingGitHubToken is returned by publish when no token is configured.
func MissingGitHubToken() *CLIError {
	return NewConfigError(
		"GitHub token is not configured",
		"Export RELNOTES_GITHUB_TOKEN or GITHUB_TOKEN",
		"Or set github.token in .relnotes/config.yml",
	)
}

// MissingGitHubRepo is returned by publish when owner or repo is unset.
func MissingGitHubRepo() *CLIError {
	return NewConfigError(
		"GitHub repository is not configured",
		"Set github.owner and github.repo in .relnotes/config.yml",
		"Or pass --repo owner/name",
	)
}

// UnknownBatch is returned when rollback is given an id the store never issued.
func UnknownBatch(batchID string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("upload batch not found: %s", batchID),
		"Batch ids are printed by 'relnotes import'",
		"List upload batches with: relnotes rollback --list",
	)
}

// UnknownVersion is returned when a command names a release the store lacks.
func UnknownVersion(version string, available []string) *CLIError {
	hint := "The store is empty; import notes with 'relnotes import <file>'"
	if len(available) > 0 {
		hint = "Available versions: " + strings.Join(available, ", ")
	}
	return NewArgumentError(
		fmt.Sprintf("release version not found: %s", version),
		hint,
	)
}

// InvalidOutputFormat is returned for an unsupported --format value.
func InvalidOutputFormat(format string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid output format: %s", format),
		"relnotes <command> --format "+strings.Join(valid, "|"),
		"Set a default with output_format in .relnotes/config.yml",
	)
}

// ConfigParseError wraps an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Show the merged configuration with: relnotes config show",
	)
}
