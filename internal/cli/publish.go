package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/SavaKodi/DatexReleaseNotes/internal/config"
	clierrors "github.com/SavaKodi/DatexReleaseNotes/internal/errors"
	"github.com/SavaKodi/DatexReleaseNotes/internal/publish"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/spf13/cobra"
)

// releasePublisher is satisfied by *publish.Client.
type releasePublisher interface {
	Publish(ctx context.Context, req publish.Request) (*publish.Result, error)
}

// newPublisher is replaced in tests.
var newPublisher = func(ctx context.Context, gh config.GitHubConfig) releasePublisher {
	return publish.NewClient(ctx, gh.Token, gh.Owner, gh.Repo, gh.TagPrefix)
}

var publishCmd = &cobra.Command{
	Use:   "publish <version>",
	Short: "Create a GitHub release from a stored release",
	Long: `Create a GitHub release whose body is the Markdown rendering of a stored
release. The tag is github.tag_prefix followed by the version. The token
comes from github.token, RELNOTES_GITHUB_TOKEN or GITHUB_TOKEN.`,
	Example: `  # Publish as a draft
  relnotes publish 25.04.11 --draft

  # Preview the release body
  relnotes publish 25.04.11 --dry-run

  # Update an existing release
  relnotes publish 25.04.11 --update --repo acme/wms`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.GroupID = GroupIntegrations
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().Bool("draft", false, "Create the release as a draft (default from github.draft)")
	publishCmd.Flags().Bool("update", false, "Update the release when the tag already has one")
	publishCmd.Flags().String("repo", "", "Repository as owner/name (default from github.owner and github.repo)")
	publishCmd.Flags().Bool("dry-run", false, "Print the release body without publishing")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
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

	rel := render.FromStore([]store.ReleaseView{*view})[0]
	body := render.MarkdownBody(rel)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprint(cmd.OutOrStdout(), body)
		return nil
	}

	gh, err := githubSettings(cmd, cfg)
	if err != nil {
		return err
	}

	req := publish.Request{Version: rel.Version, Date: rel.Date, Body: body, Draft: gh.Draft}
	req.Update, _ = cmd.Flags().GetBool("update")

	sp := newSpinner(cmd)
	sp.Start(fmt.Sprintf("Publishing %s to %s/%s", rel.Version, gh.Owner, gh.Repo))
	res, err := newPublisher(cmd.Context(), gh).Publish(cmd.Context(), req)
	if err != nil {
		sp.Fail("Publish failed")
		if errors.Is(err, publish.ErrReleaseExists) {
			return clierrors.WrapWithMessage(err, clierrors.Argument, err.Error(),
				"Pass --update to overwrite the existing release")
		}
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	verb := "Updated"
	if res.Created {
		verb = "Created"
	}
	sp.Success(fmt.Sprintf("%s release %s", verb, res.Tag))
	fmt.Fprintln(cmd.OutOrStdout(), res.URL)
	return nil
}

// githubSettings merges flags over the configured GitHub settings and
// checks that a repository and token are present.
func githubSettings(cmd *cobra.Command, cfg *config.Configuration) (config.GitHubConfig, error) {
	gh := cfg.GitHub
	if repo, _ := cmd.Flags().GetString("repo"); repo != "" {
		owner, name, err := publish.ParseRepo(repo)
		if err != nil {
			return gh, clierrors.NewArgumentErrorWithUsage(err.Error(), "relnotes publish <version> --repo owner/name")
		}
		gh.Owner, gh.Repo = owner, name
	}
	if cmd.Flags().Changed("draft") {
		gh.Draft, _ = cmd.Flags().GetBool("draft")
	}

	if gh.Owner == "" || gh.Repo == "" {
		return gh, clierrors.MissingGitHubRepo()
	}
	if gh.Token == "" {
		return gh, clierrors.MissingGitHubToken()
	}
	return gh, nil
}
