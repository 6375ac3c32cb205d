package cli

import (
	"fmt"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <version>...",
	Short: "Delete stored releases and their items",
	Example: `  relnotes delete 25.04.11
  relnotes delete 25.04.11 25.01.17`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.GroupID = GroupStore
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	res, err := st.DeleteVersions(args)
	if err != nil {
		return storeErr(st, err)
	}
	if res.Releases == 0 {
		available, err := st.ListVersions()
		if err != nil {
			return storeErr(st, err)
		}
		return clierrors.UnknownVersion(args[0], available)
	}
	if res.Releases < len(args) {
		warnf(cmd, cfg, "%d of %d version(s) were not stored", len(args)-res.Releases, len(args))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d release(s) and %d item(s)\n", res.Releases, res.Items)
	return nil
}
