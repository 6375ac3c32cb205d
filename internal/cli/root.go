// Package cli implements the relnotes command line interface.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupGettingStarted = "getting-started"
	GroupParsing        = "parsing"
	GroupStore          = "store"
	GroupIntegrations   = "integrations"
	GroupConfiguration  = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Parse, store and publish release notes",
	Long: `relnotes turns pasted or exported release notes into structured releases.

Release headers are date tokens such as 25.01.17, 2025-01-17 or 17.01.2025.
Items start with an Azure DevOps id ("215139 Mobile Web - Title") or carry a
metadata line ("ID: 215139 | Component: API | Category: Bug"). Parsed releases
can be exported as JSON, kept in a local store, and published as GitHub
releases.`,
	Example: `  # Parse a file and print the releases
  relnotes parse notes.txt

  # Write notes-parsed.json next to the input
  relnotes export notes.txt

  # Store the releases and browse them
  relnotes import notes.txt
  relnotes list --component api`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupParsing, Title: "Parsing:"},
		&cobra.Group{ID: GroupStore, Title: "Release Store:"},
		&cobra.Group{ID: GroupIntegrations, Title: "Integrations:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupGettingStarted)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Project config file (default .relnotes/config.yml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print per-section parse diagnostics")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colors and icons")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: table, json, yaml or markdown (default from config)")
}

// Execute runs the root command and returns the process exit code.
// Interrupts cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			plain, _ := rootCmd.PersistentFlags().GetBool("plain")
			clierrors.Fprint(rootCmd.ErrOrStderr(), err, plain || color.NoColor)
		}
	}
	return ExitCode(err)
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
