package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	"github.com/SavaKodi/DatexReleaseNotes/internal/publish"
	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchPattern = regexp.MustCompile(`Batch: (\S+)`)

func TestParseCmd(t *testing.T) {
	dir := setupWorkspace(t)
	notes := writeNotes(t, dir, "notes.txt", twoReleaseNotes)
	old := writeNotes(t, dir, "old.txt", twoReleaseNotes+"---\n22.12.01\n---\n100001 Ancient change\n")
	empty := writeNotes(t, dir, "empty.txt", "hello world\n")

	t.Run("json", func(t *testing.T) {
		out, _, err := runCLI(t, "parse", notes, "--format", "json")
		require.NoError(t, err)

		var releases []releasenotes.ParsedRelease
		require.NoError(t, json.Unmarshal([]byte(out), &releases))
		require.Len(t, releases, 2)
		assert.Equal(t, "25.04.11", releases[0].Version)
		require.Len(t, releases[0].Items, 2)
		assert.Equal(t, releasenotes.ComponentMobileWeb, *releases[0].Items[0].Component)
		assert.Equal(t, "Label printing fix", releases[1].Items[0].Title)
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := runCLI(t, "parse", notes)
		require.NoError(t, err)
		assert.Contains(t, out, "## 25.04.11 (2025-04-11)")
		assert.Contains(t, out, "  - [215200] Carrier rating endpoint (API)")
	})

	t.Run("dropped sections warn", func(t *testing.T) {
		_, errOut, err := runCLI(t, "parse", old)
		require.NoError(t, err)
		assert.Contains(t, errOut, "Warning: "+old+": 1 section(s) dropped")
	})

	t.Run("verbose diagnostics", func(t *testing.T) {
		_, errOut, err := runCLI(t, "parse", old, "--verbose")
		require.NoError(t, err)
		assert.Contains(t, errOut, "3 section(s), 2 kept")
		assert.Contains(t, errOut, "dropped: 22.12.01 is before 2023-05-19")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCLI(t, "parse", filepath.Join(dir, "missing.txt"))
		require.Error(t, err)
		assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	})

	t.Run("nothing parsed", func(t *testing.T) {
		_, _, err := runCLI(t, "parse", empty)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no releases detected")
		assert.Equal(t, ExitParseFailed, ExitCode(err))
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := runCLI(t, "parse", notes, "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	})
}

func TestExportCmd(t *testing.T) {
	dir := setupWorkspace(t)
	notes := writeNotes(t, dir, "notes.txt", twoReleaseNotes)

	out, _, err := runCLI(t, "export", notes)
	require.NoError(t, err)
	want := filepath.Join(dir, "notes-parsed.json")
	assert.Equal(t, "Exported 2 release(s) to "+want+"\n", out)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"version\": \"25.04.11\""))

	stdout, _, err := runCLI(t, "export", notes, "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, string(data), stdout)
}

func TestDefaultExportPath(t *testing.T) {
	assert.Equal(t, "dir/notes-parsed.json", defaultExportPath("dir/notes.txt"))
	assert.Equal(t, "notes-parsed.json", defaultExportPath("notes"))
}

func TestStoreCommands(t *testing.T) {
	dir := setupWorkspace(t)
	notes := writeNotes(t, dir, "notes.txt", twoReleaseNotes)

	out, errOut, err := runCLI(t, "import", notes)
	require.NoError(t, err)
	assert.Contains(t, out, "25.04.11   new      2 item(s)")
	assert.Contains(t, errOut, "Imported 2 release(s), 3 item(s)")
	m := batchPattern.FindStringSubmatch(out)
	require.NotNil(t, m)
	firstBatch := m[1]

	t.Run("dry run", func(t *testing.T) {
		out, _, err := runCLI(t, "import", notes, "--dry-run", "--replace")
		require.NoError(t, err)
		assert.Contains(t, out, "25.04.11   replace")
		assert.Contains(t, out, "Dry run")
	})

	t.Run("second import warns", func(t *testing.T) {
		out, errOut, err := runCLI(t, "import", notes)
		require.NoError(t, err)
		assert.Contains(t, errOut, "already stored: 25.01.17, 25.04.11")
		assert.Contains(t, out, "25.04.11   existing")

		m := batchPattern.FindStringSubmatch(out)
		require.NotNil(t, m)
		out, _, err = runCLI(t, "rollback", m[1])
		require.NoError(t, err)
		assert.Contains(t, out, "0 release(s), 3 item(s) removed")
	})

	t.Run("list", func(t *testing.T) {
		out, _, err := runCLI(t, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "## 25.04.11 (2025-04-11)")
		assert.Contains(t, out, "## 25.01.17 (2025-01-17)")
		assert.NotContains(t, out, "Adds UPS rating")

		out, _, err = runCLI(t, "list", "--component", "desktop")
		require.NoError(t, err)
		assert.NotContains(t, out, "25.04.11")
		assert.Contains(t, out, "Label printing fix")

		out, _, err = runCLI(t, "list", "--text", "nothing-like-it")
		require.NoError(t, err)
		assert.Equal(t, "No matching releases.\n", out)
	})

	t.Run("list rejects bad filters", func(t *testing.T) {
		for _, args := range [][]string{
			{"list", "--component", "mainframe"},
			{"list", "--category", "chore"},
			{"list", "--since", "01/01/2025"},
		} {
			_, _, err := runCLI(t, args...)
			require.Error(t, err, args)
			assert.Equal(t, ExitInvalidArguments, ExitCode(err), args)
		}
	})

	t.Run("show", func(t *testing.T) {
		out, _, err := runCLI(t, "show", "25.04.11", "--format", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "- **215139** Scanner freeze on wave release _(Mobile Web)_")

		_, _, err = runCLI(t, "show", "99.01.01")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release version not found: 99.01.01")
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	})

	t.Run("quarterly", func(t *testing.T) {
		out, _, err := runCLI(t, "quarterly", "25.04.11")
		require.NoError(t, err)
		assert.Equal(t, "25.04.11 marked as quarterly release (Q2 2025)\n", out)

		out, _, err = runCLI(t, "list", "--version", "25.04.11", "--format", "json")
		require.NoError(t, err)
		var views []store.ReleaseView
		require.NoError(t, json.Unmarshal([]byte(out), &views))
		require.Len(t, views, 1)
		assert.True(t, views[0].Release.IsQuarterly)

		out, _, err = runCLI(t, "quarterly", "25.04.11", "--unset")
		require.NoError(t, err)
		assert.Contains(t, out, "no longer a quarterly release")
	})

	t.Run("rollback list and unknown batch", func(t *testing.T) {
		out, _, err := runCLI(t, "rollback", "--list")
		require.NoError(t, err)
		assert.Contains(t, out, firstBatch)

		_, _, err = runCLI(t, "rollback", "not-a-batch")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		out, _, err := runCLI(t, "delete", "25.01.17")
		require.NoError(t, err)
		assert.Equal(t, "Deleted 1 release(s) and 1 item(s)\n", out)

		_, _, err = runCLI(t, "delete", "25.01.17")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "release version not found")
	})

	t.Run("replace", func(t *testing.T) {
		out, _, err := runCLI(t, "import", notes, "--replace")
		require.NoError(t, err)
		assert.Contains(t, out, "Replaced 1 stored release(s)")

		out, _, err = runCLI(t, "list", "--format", "json")
		require.NoError(t, err)
		var views []store.ReleaseView
		require.NoError(t, json.Unmarshal([]byte(out), &views))
		require.Len(t, views, 2)
		assert.Len(t, views[0].Items, 2)
	})
}

type fakePublisher struct {
	gh  config.GitHubConfig
	req publish.Request
}

func (f *fakePublisher) Publish(_ context.Context, req publish.Request) (*publish.Result, error) {
	f.req = req
	return &publish.Result{Tag: f.gh.TagPrefix + req.Version, URL: "https://example.test/releases/1", Created: true}, nil
}

func TestPublishCmd(t *testing.T) {
	dir := setupWorkspace(t)
	notes := writeNotes(t, dir, "notes.txt", twoReleaseNotes)
	_, _, err := runCLI(t, "import", notes)
	require.NoError(t, err)

	fake := &fakePublisher{}
	orig := newPublisher
	newPublisher = func(_ context.Context, gh config.GitHubConfig) releasePublisher {
		fake.gh = gh
		return fake
	}
	t.Cleanup(func() { newPublisher = orig })

	t.Run("dry run prints the body", func(t *testing.T) {
		out, _, err := runCLI(t, "publish", "25.04.11", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "- **215200** Carrier rating endpoint _(API)_")
	})

	t.Run("missing repository", func(t *testing.T) {
		_, _, err := runCLI(t, "publish", "25.04.11")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "repository is not configured")
	})

	t.Run("missing token", func(t *testing.T) {
		_, _, err := runCLI(t, "publish", "25.04.11", "--repo", "acme/wms")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token is not configured")
	})

	t.Run("bad repo flag", func(t *testing.T) {
		_, _, err := runCLI(t, "publish", "25.04.11", "--repo", "acme")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	})

	t.Run("publishes", func(t *testing.T) {
		t.Setenv("RELNOTES_GITHUB_TOKEN", "ghp_test_token")
		out, errOut, err := runCLI(t, "publish", "25.04.11", "--repo", "acme/wms", "--draft")
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/releases/1\n", out)
		assert.Contains(t, errOut, "Created release release-25.04.11")

		assert.Equal(t, "acme", fake.gh.Owner)
		assert.Equal(t, "wms", fake.gh.Repo)
		assert.Equal(t, "ghp_test_token", fake.gh.Token)
		assert.True(t, fake.req.Draft)
		assert.Equal(t, "2025-04-11", fake.req.Date)
		assert.Contains(t, fake.req.Body, "### ")
	})

	t.Run("unknown version", func(t *testing.T) {
		_, _, err := runCLI(t, "publish", "20.01.01", "--dry-run")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	})
}

func TestWatchCmd_MissingFile(t *testing.T) {
	dir := setupWorkspace(t)
	_, _, err := runCLI(t, "watch", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
}

func TestConfigCommands(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("RELNOTES_GITHUB_TOKEN", "supersecrettoken123")

	t.Run("show", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "# Configuration Sources: default < env")
		assert.Contains(t, out, "store_path:")
		assert.Contains(t, out, "supe")
		assert.NotContains(t, out, "supersecrettoken123")
	})

	t.Run("show json", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "show", "--json")
		require.NoError(t, err)
		var cfg map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, "table", cfg["output_format"])
	})

	t.Run("keys", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "keys")
		require.NoError(t, err)
		assert.Contains(t, out, "github.token")
		assert.Contains(t, out, "RELNOTES_GITHUB_TOKEN")
	})

	t.Run("init", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Created")
		assert.FileExists(t, config.ProjectConfigPath())

		_, _, err = runCLI(t, "config", "init")
		require.Error(t, err)
		assert.Equal(t, ExitInvalidArguments, ExitCode(err))

		_, _, err = runCLI(t, "config", "init", "--force")
		require.NoError(t, err)
	})
}
