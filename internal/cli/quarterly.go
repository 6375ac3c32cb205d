package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

var quarterlyCmd = &cobra.Command{
	Use:   "quarterly <version>",
	Short: "Mark a stored release as the quarterly release",
	Long: `Mark a stored release as a quarterly release. Quarterly releases show a
"Q<n> <year>" label derived from their release date.`,
	Example: `  relnotes quarterly 25.04.11
  relnotes quarterly 25.04.11 --unset`,
	Args: cobra.ExactArgs(1),
	RunE: runQuarterly,
}

func init() {
	quarterlyCmd.GroupID = GroupStore
	rootCmd.AddCommand(quarterlyCmd)
	quarterlyCmd.Flags().Bool("unset", false, "Remove the quarterly flag")
}

func runQuarterly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	unset, _ := cmd.Flags().GetBool("unset")
	if err := st.SetQuarterly(args[0], !unset); err != nil {
		var nf *store.VersionNotFoundError
		if errors.As(err, &nf) {
			return clierrors.UnknownVersion(nf.Version, nf.AvailableVersions)
		}
		return storeErr(st, err)
	}

	out := cmd.OutOrStdout()
	if unset {
		fmt.Fprintf(out, "%s is no longer a quarterly release\n", args[0])
		return nil
	}
	view, err := getRelease(st, args[0])
	if err != nil {
		return err
	}
	if q, ok := view.Quarter(); ok {
		fmt.Fprintf(out, "%s marked as quarterly release (%s)\n", args[0], q.Label)
	} else {
		fmt.Fprintf(out, "%s marked as quarterly release\n", args[0])
	}
	return nil
}
