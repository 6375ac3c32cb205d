package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SavaKodi/DatexReleaseNotes/internal/ingest"
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/sethvargo/go-githubactions"
)

func main() {
	action := githubactions.New()

	file := action.GetInput("file")
	if file == "" {
		file = os.Getenv("RELNOTES_FILE")
		if file == "" {
			action.Fatalf("file input is required")
		}
	}
	if !filepath.IsAbs(file) {
		if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
			file = filepath.Join(ws, file)
		}
	}

	format := action.GetInput("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "markdown" {
		action.Fatalf("format must be json or markdown, got: %s", format)
	}

	res, err := ingest.ParseFile(file)
	if err != nil {
		action.Fatalf("Failed to read %s: %v", file, err)
	}
	action.Infof("Decoded %s as %s", file, res.Encoding)

	for _, d := range res.Report.Dropped() {
		action.Warningf("%s", describeDropped(d))
	}
	if res.Report.JSONDropped > 0 {
		action.Warningf("%d JSON release(s) dated before %s were skipped", res.Report.JSONDropped, releasenotes.CutoffDate)
	}

	releases := res.Report.Releases
	if len(releases) == 0 {
		action.Fatalf("No releases detected in %s", file)
	}

	out, err := renderReleases(format, releases)
	if err != nil {
		action.Fatalf("Failed to render releases: %v", err)
	}

	action.SetOutput("releases", out)
	action.SetOutput("count", strconv.Itoa(len(releases)))
	action.Infof("Parsed %d release(s) from %s", len(releases), file)
}

func describeDropped(d releasenotes.SectionDiagnostic) string {
	header := d.DateLine
	if header == "" {
		header = "(no header)"
	}
	if d.Err != nil {
		return fmt.Sprintf("line %d %s: %v", d.HeaderIndex+1, header, d.Err)
	}
	return fmt.Sprintf("line %d %s: %s is before %s", d.HeaderIndex+1, header, d.Version, releasenotes.CutoffDate)
}

func renderReleases(format string, releases []releasenotes.ParsedRelease) (string, error) {
	var buf bytes.Buffer
	var err error
	if format == "markdown" {
		err = render.Markdown(&buf, render.FromParsed(releases))
	} else {
		err = render.JSON(&buf, releases)
	}
	return buf.String(), err
}
