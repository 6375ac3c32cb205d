package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the parsed releases of a file as JSON",
	Long: `Parse a release notes file and write the releases as indented JSON.

The default output is <name>-parsed.json next to the input file. The JSON
can be fed back to parse or import.`,
	Example: `  # Writes notes-parsed.json
  relnotes export notes.txt

  # Choose the output file, or '-' for stdout
  relnotes export notes.txt -o releases.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.GroupID = GroupParsing
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (default <name>-parsed.json, '-' for stdout)")
}

// defaultExportPath is "<dir>/<base>-parsed.json".
func defaultExportPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "-parsed.json"
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	releases, err := parseInputs(cmd, cfg, args)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "-" {
		return render.JSON(cmd.OutOrStdout(), releases)
	}
	if out == "" {
		out = defaultExportPath(args[0])
	}

	f, err := os.Create(out)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, fmt.Sprintf("cannot write %s", out))
	}
	if err := render.JSON(f, releases); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d release(s) to %s\n", len(releases), out)
	return nil
}
