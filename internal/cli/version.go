package cli

import (
	"fmt"
	"strings"

	"github.com/SavaKodi/DatexReleaseNotes/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for relnotes",
	Example: `  # Show version info
  relnotes version

  # Plain output (for scripts)
  relnotes version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := build.Current()
		rows := [][2]string{
			{"Version", info.Version},
			{"Commit", info.Commit},
			{"Built", info.BuildDate},
			{"Go", info.GoVersion},
			{"Platform", info.Platform},
		}

		out := cmd.OutOrStdout()
		if isPlain(cmd, nil, out) {
			fmt.Fprintf(out, "relnotes %s\n", info.Version)
			for _, r := range rows[1:] {
				fmt.Fprintf(out, "%s: %s\n", strings.ToLower(r[0]), r[1])
			}
			return
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		white := color.New(color.FgWhite, color.Bold).SprintFunc()
		for _, r := range rows {
			fmt.Fprintf(out, "%s  %s\n", yellow(fmt.Sprintf("%10s", r[0])), white(r[1]))
		}
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(versionCmd)
}
