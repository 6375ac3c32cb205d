package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/ingest"
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse release notes files and print the releases",
	Long: `Parse one or more release notes files and print the releases found.

Files may hold plain text with one or more releases, or a JSON export. Each
release needs a date header; releases dated before ` + releasenotes.CutoffDate + ` are
left out. Files are decoded from UTF-8, UTF-16 or Windows-1252.`,
	Example: `  # Print releases grouped by category
  relnotes parse notes.txt

  # Machine-readable output
  relnotes parse notes.txt --format json

  # Explain what happened to every section
  relnotes parse notes.txt --verbose`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.GroupID = GroupParsing
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("compact", false, "Omit item descriptions in table output")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}

	releases, err := parseInputs(cmd, cfg, args)
	if err != nil {
		return err
	}

	opts := renderOptions(cmd, cfg)
	opts.Compact, _ = cmd.Flags().GetBool("compact")
	doc := render.Document{Releases: render.FromParsed(releases), Data: releases}
	return render.Write(cmd.OutOrStdout(), format, doc, opts)
}

// parseInputs parses files concurrently, reports dropped sections and
// fails when no release survived.
func parseInputs(cmd *cobra.Command, cfg *config.Configuration, paths []string) ([]releasenotes.ParsedRelease, error) {
	if err := checkFiles(paths); err != nil {
		return nil, err
	}

	results, err := ingest.ParseFiles(cmd.Context(), paths, cfg.Workers)
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Runtime)
	}

	dropped := 0
	for _, r := range results {
		n := len(r.Report.Dropped()) + r.Report.JSONDropped
		dropped += n
		if isVerbose(cmd) {
			writeDiagnostics(cmd.ErrOrStderr(), r)
		} else if n > 0 {
			warnf(cmd, cfg, "%s: %d section(s) dropped; run with --verbose for details", r.Path, n)
		}
	}

	releases := ingest.Releases(results)
	if len(releases) == 0 {
		return nil, clierrors.NoReleasesDetected(strings.Join(paths, ", "), dropped)
	}
	return releases, nil
}

// writeDiagnostics prints one line per section of a parsed file.
func writeDiagnostics(w io.Writer, r *ingest.FileResult) {
	rep := r.Report
	if rep.FromJSON {
		fmt.Fprintf(w, "%s (%s): JSON input, %d kept, %d before %s\n",
			r.Path, r.Encoding, len(rep.Releases), rep.JSONDropped, releasenotes.CutoffDate)
		return
	}

	fmt.Fprintf(w, "%s (%s): %d section(s), %d kept\n", r.Path, r.Encoding, len(rep.Sections), len(rep.Releases))
	for _, s := range rep.Sections {
		header := s.DateLine
		if header == "" {
			header = "(no header)"
		}
		status := "kept " + s.Version
		switch {
		case s.Err != nil:
			status = "dropped: " + s.Err.Error()
		case s.BeforeCutoff:
			status = fmt.Sprintf("dropped: %s is before %s", s.Version, releasenotes.CutoffDate)
		}
		fmt.Fprintf(w, "  line %-5d %-12s %s\n", s.HeaderIndex+1, header, status)
	}
}
