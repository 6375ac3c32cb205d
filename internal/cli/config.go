package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relnotes configuration",
	Long: `Manage relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELNOTES_*)
  2. Project config (.relnotes/config.yml or .relnotes/config.json)
  3. User config (~/.config/relnotes/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the merged configuration
  relnotes config show

  # List every key with its environment variable
  relnotes config keys

  # Create .relnotes/config.yml
  relnotes config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the merged configuration (token masked)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	sources := make([]string, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = string(s)
	}

	redacted := cfg.Redacted()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return render.JSON(out, redacted)
	}
	fmt.Fprintf(out, "# Configuration Sources: %s\n", strings.Join(sources, " < "))
	return render.YAML(out, redacted)
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, key := range config.SortedKeys() {
		schema, _ := config.GetKeySchema(key)
		line := fmt.Sprintf("%-18s %-9s %-30s %s", key, schema.Type, schema.EnvName(), schema.Description)
		if len(schema.AllowedValues) > 0 {
			line += " (" + strings.Join(schema.AllowedValues, ", ") + ")"
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.ProjectConfigPath()
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return clierrors.NewArgumentError(
			fmt.Sprintf("config file already exists: %s", path),
			"Pass --force to overwrite it",
		)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
