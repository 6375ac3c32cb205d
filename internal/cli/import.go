package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Parse files and save the releases to the store",
	Long: `Parse release notes files and save the releases in the local store.

A release that is already stored is reused and the new items are added to
it. With --replace, stored releases with the same versions are deleted
first. Every import gets a batch id that 'relnotes rollback' can undo.`,
	Example: `  # Import and print the batch id
  relnotes import notes.txt

  # Overwrite releases imported earlier
  relnotes import notes.txt --replace

  # Show what would be stored
  relnotes import notes.txt --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.GroupID = GroupStore
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("replace", false, "Delete stored releases with the same versions first")
	importCmd.Flags().Bool("dry-run", false, "Parse and report without writing to the store")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	releases, err := parseInputs(cmd, cfg, args)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	payloads := releasenotes.ToPayloads(releases)
	versions := make([]string, 0, len(payloads))
	for _, p := range payloads {
		versions = append(versions, p.Release.Version)
	}
	existing, err := st.ExistingVersions(versions)
	if err != nil {
		return storeErr(st, err)
	}

	replace, _ := cmd.Flags().GetBool("replace")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	if dryRun {
		for _, p := range payloads {
			action := "new"
			if _, ok := existing[p.Release.Version]; ok {
				action = "existing"
				if replace {
					action = "replace"
				}
			}
			fmt.Fprintf(out, "%-10s %-10s %d item(s)\n", p.Release.Version, action, len(p.Items))
		}
		fmt.Fprintln(out, "Dry run: nothing was written.")
		return nil
	}

	if len(existing) > 0 && !replace {
		warnf(cmd, cfg, "already stored: %s; items will be added to them (use --replace to overwrite)",
			strings.Join(sortedKeys(existing), ", "))
	}

	sp := newSpinner(cmd)
	sp.Start(fmt.Sprintf("Importing %d release(s)", len(payloads)))
	var res *store.ImportResult
	if replace {
		res, err = st.Replace(payloads)
	} else {
		res, err = st.Import(payloads)
	}
	if err != nil {
		sp.Fail("Import failed")
		return storeErr(st, err)
	}
	sp.Success(fmt.Sprintf("Imported %d release(s), %d item(s)", len(res.Releases), res.ItemCount()))

	writeImportResult(cmd, res)
	return nil
}

func writeImportResult(cmd *cobra.Command, res *store.ImportResult) {
	out := cmd.OutOrStdout()
	for _, r := range res.Releases {
		state := "existing"
		if r.Created {
			state = "new"
		}
		fmt.Fprintf(out, "  %-10s %-8s %d item(s)\n", r.Version, state, r.Items)
	}
	if res.Replaced > 0 {
		fmt.Fprintf(out, "Replaced %d stored release(s)\n", res.Replaced)
	}
	fmt.Fprintf(out, "Batch: %s\n", res.BatchID)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
