package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored releases",
	Long: `List stored releases, newest first. Item filters keep only matching items
and hide releases left without any.`,
	Example: `  # Everything, titles only
  relnotes list

  # Mobile bugs since January
  relnotes list --component mobile_web --category bug --since 2025-01-01

  # Items mentioning both words
  relnotes list --text "wave release" --titles-only`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.GroupID = GroupStore
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("component", "", "Filter by component ("+joinComponents()+")")
	listCmd.Flags().String("category", "", "Filter by category ("+joinCategories()+")")
	listCmd.Flags().String("version", "", "Only this release version")
	listCmd.Flags().StringP("text", "t", "", "Search terms; every term must match")
	listCmd.Flags().Bool("titles-only", false, "Match --text against titles only")
	listCmd.Flags().String("since", "", "Only releases on or after YYYY-MM-DD")
	listCmd.Flags().IntP("last", "n", 0, "Only the N newest releases")
	listCmd.Flags().Bool("full", false, "Include item descriptions in table output")
}

func joinComponents() string {
	names := make([]string, 0, 4)
	for _, c := range releasenotes.ValidComponents() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func joinCategories() string {
	names := make([]string, 0, 3)
	for _, c := range releasenotes.ValidCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// filterFromFlags validates the list flags.
func filterFromFlags(cmd *cobra.Command) (store.Filter, error) {
	var f store.Filter
	f.Component, _ = cmd.Flags().GetString("component")
	f.Category, _ = cmd.Flags().GetString("category")
	f.Version, _ = cmd.Flags().GetString("version")
	f.Text, _ = cmd.Flags().GetString("text")
	f.TitlesOnly, _ = cmd.Flags().GetBool("titles-only")
	f.Since, _ = cmd.Flags().GetString("since")
	f.Last, _ = cmd.Flags().GetInt("last")

	if f.Component != "" && !slices.Contains(releasenotes.ValidComponents(), releasenotes.Component(f.Component)) {
		return f, clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown component: %s", f.Component),
			"relnotes list --component "+joinComponents(),
		)
	}
	if f.Category != "" && !slices.Contains(releasenotes.ValidCategories(), releasenotes.Category(f.Category)) {
		return f, clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown category: %s", f.Category),
			"relnotes list --category "+joinCategories(),
		)
	}
	if f.Since != "" {
		if _, err := time.Parse(time.DateOnly, f.Since); err != nil {
			return f, clierrors.NewArgumentError(
				fmt.Sprintf("invalid --since date: %s", f.Since),
				"Use YYYY-MM-DD, e.g. --since 2025-01-01",
			)
		}
	}
	if f.Last < 0 {
		return f, clierrors.NewArgumentError(fmt.Sprintf("--last must be positive, got %d", f.Last))
	}
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	views, err := st.List(filter)
	if err != nil {
		return storeErr(st, err)
	}
	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching releases.")
		return nil
	}

	opts := renderOptions(cmd, cfg)
	full, _ := cmd.Flags().GetBool("full")
	opts.Compact = !full
	doc := render.Document{Releases: render.FromStore(views), Data: views}
	return render.Write(cmd.OutOrStdout(), format, doc, opts)
}
