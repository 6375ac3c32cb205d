package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/SavaKodi/DatexReleaseNotes/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-import a file every time it is saved",
	Long: `Import a release notes file and keep the store in sync with it. Each save
replaces the stored releases whose versions appear in the file. Stop with
Ctrl-C.`,
	Example: `  relnotes watch notes.txt
  relnotes watch notes.txt --debounce 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.GroupID = GroupIntegrations
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "Quiet period before re-importing (default from watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkFiles(args); err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	debounce := cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce, _ = cmd.Flags().GetDuration("debounce")
	}

	resync := func(ctx context.Context) error {
		return syncFile(cmd, cfg, st, args[0])
	}
	if err := resync(cmd.Context()); err != nil {
		warnf(cmd, cfg, "%v", err)
	}

	w, err := watch.New(args[0], debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	w.OnError = func(err error) { warnf(cmd, cfg, "%v", err) }

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (debounce %s)\n", w.Path(), debounceLabel(debounce))
	return w.Run(cmd.Context(), resync)
}

func debounceLabel(d time.Duration) string {
	if d <= 0 {
		return watch.DefaultDebounce.String()
	}
	return d.String()
}

// syncFile re-parses path and replaces its releases in the store.
func syncFile(cmd *cobra.Command, cfg *config.Configuration, st *store.Store, path string) error {
	releases, err := parseInputs(cmd, cfg, []string{path})
	if err != nil {
		return err
	}
	res, err := st.Replace(releasenotes.ToPayloads(releases))
	if err != nil {
		return storeErr(st, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  synced %d release(s), %d item(s)  batch %s\n",
		time.Now().Format("15:04:05"), len(res.Releases), res.ItemCount(), res.BatchID)
	return nil
}
