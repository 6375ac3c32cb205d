package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const twoReleaseNotes = `25.04.11
---
215139 Mobile Web - Scanner freeze on wave release
Scanner no longer hangs.

215200 API - Carrier rating endpoint
Adds UPS rating.
---
25.01.17
---
Label printing fix
ID: 210001 | Component: Desktop | Category: Bug
Labels print again.
`

// setupWorkspace isolates config, store and cwd for one test.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("RELNOTES_STORE_PATH", filepath.Join(dir, "data", "store.yml"))
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func writeNotes(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores every flag of c and its subcommands to its default
// so runs of the shared rootCmd do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes rootCmd with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
