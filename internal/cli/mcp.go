package cli

import (
	"github.com/SavaKodi/DatexReleaseNotes/internal/build"
	"github.com/SavaKodi/DatexReleaseNotes/internal/mcpserver"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the parser and store as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Tools: parse_release_notes, and list_releases and get_release when the
release store can be opened.`,
	Example: `  # Register with an MCP client
  relnotes mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.GroupID = GroupIntegrations
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var st *store.Store
	if opened, err := openStore(cfg); err != nil {
		warnf(cmd, cfg, "store tools disabled: %v", err)
	} else {
		st = opened
	}
	return mcpserver.New(st).ServeStdio(build.Version)
}
