package cli

import (
	"errors"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Show one stored release with all its items",
	Example: `  relnotes show 25.04.11
  relnotes show 25.04.11 --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.GroupID = GroupStore
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	view, err := getRelease(st, args[0])
	if err != nil {
		return err
	}
	doc := render.Document{Releases: render.FromStore([]store.ReleaseView{*view}), Data: view}
	return render.Write(cmd.OutOrStdout(), format, doc, renderOptions(cmd, cfg))
}

// getRelease maps a missing version onto UnknownVersion.
func getRelease(st *store.Store, version string) (*store.ReleaseView, error) {
	view, err := st.GetVersion(version)
	if err != nil {
		var nf *store.VersionNotFoundError
		if errors.As(err, &nf) {
			return nil, clierrors.UnknownVersion(nf.Version, nf.AvailableVersions)
		}
		return nil, storeErr(st, err)
	}
	return view, nil
}
