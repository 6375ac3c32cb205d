// Package publish creates GitHub releases from stored release notes.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// releaseAPI is the subset of the GitHub repositories service used here.
type releaseAPI interface {
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error)
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error)
	EditRelease(ctx context.Context, owner, repo string, id int64, release *github.RepositoryRelease) (*github.RepositoryRelease, *github.Response, error)
}

// Client publishes releases to one repository.
type Client struct {
	api       releaseAPI
	owner     string
	repo      string
	tagPrefix string
}

// NewClient creates a client authenticated with a personal access token.
func NewClient(ctx context.Context, token, owner, repo, tagPrefix string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return newClient(github.NewClient(tc).Repositories, owner, repo, tagPrefix)
}

func newClient(api releaseAPI, owner, repo, tagPrefix string) *Client {
	return &Client{api: api, owner: owner, repo: repo, tagPrefix: tagPrefix}
}

// ParseRepo splits "owner/repo".
func ParseRepo(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", fullName)
	}
	return owner, repo, nil
}

// Request describes a release to publish.
type Request struct {
	Version string
	Date    string
	Body    string
	Draft   bool
	// Update edits an existing release with the same tag instead of failing.
	Update bool
}

// Result reports what Publish did.
type Result struct {
	Tag     string
	URL     string
	Created bool
}

// ErrReleaseExists is returned when the tag already has a release and
// Update was not requested.
var ErrReleaseExists = errors.New("release already exists")

// Tag returns the git tag used for a version.
func (c *Client) Tag(version string) string {
	return c.tagPrefix + version
}

// Publish creates the GitHub release for req.Version, or updates it when
// it exists and req.Update is set.
func (c *Client) Publish(ctx context.Context, req Request) (*Result, error) {
	tag := c.Tag(req.Version)
	name := "Release " + req.Version
	if req.Date != "" {
		name += " (" + req.Date + ")"
	}
	release := &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(name),
		Body:    github.String(req.Body),
		Draft:   github.Bool(req.Draft),
	}

	existing, _, err := c.api.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	switch {
	case err == nil:
		if !req.Update {
			return nil, fmt.Errorf("%w: %s (%s)", ErrReleaseExists, tag, existing.GetHTMLURL())
		}
		updated, _, err := c.api.EditRelease(ctx, c.owner, c.repo, existing.GetID(), release)
		if err != nil {
			return nil, fmt.Errorf("failed to update release %s: %w", tag, err)
		}
		return &Result{Tag: tag, URL: updated.GetHTMLURL()}, nil
	case !isNotFound(err):
		return nil, fmt.Errorf("failed to look up release %s: %w", tag, err)
	}

	created, _, err := c.api.CreateRelease(ctx, c.owner, c.repo, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	return &Result{Tag: tag, URL: created.GetHTMLURL(), Created: true}, nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
