package cli

import (
	"errors"
	"fmt"
	"strings"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [batch-id]",
	Short: "Undo an import batch",
	Long: `Undo one import. Items added by the batch are removed, and releases the
batch created are removed together with all their items. Without a batch id
the stored batches are listed.`,
	Example: `  # List batches
  relnotes rollback --list

  # Undo one
  relnotes rollback 3f2a9c1e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRollback,
}

func init() {
	rollbackCmd.GroupID = GroupStore
	rootCmd.AddCommand(rollbackCmd)
	rollbackCmd.Flags().BoolP("list", "l", false, "List upload batches")
}

func runRollback(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	list, _ := cmd.Flags().GetBool("list")
	if list || len(args) == 0 {
		return listBatches(cmd, st, isPlain(cmd, cfg, cmd.OutOrStdout()))
	}

	res, err := st.RollbackBatch(args[0])
	if err != nil {
		if errors.Is(err, store.ErrBatchNotFound) {
			return clierrors.UnknownBatch(args[0])
		}
		return storeErr(st, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rolled back batch %s: %d release(s), %d item(s) removed\n",
		args[0], res.Releases, res.Items)
	return nil
}

func listBatches(cmd *cobra.Command, st *store.Store, plain bool) error {
	batches, err := st.Batches()
	if err != nil {
		return storeErr(st, err)
	}
	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintln(out, "No import batches.")
		return nil
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	for _, b := range batches {
		id := b.ID
		if !plain {
			id = cyan(id)
		}
		fmt.Fprintf(out, "%s  %s  %d item(s)  %s\n", id, b.CreatedAt, b.Items, strings.Join(b.Versions, ", "))
	}
	return nil
}
