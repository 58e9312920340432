package github

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	kozahub "github.com/monarch-initiative/kozahub-dashboard"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client implements kozahub.IDataProvider against the GitHub API. An empty
// Token means anonymous access, which only affects rate limits.
type Client struct {
	Token  string
	client *github.Client
}

func (c *Client) connect() {
	if c.client == nil {
		c.client = github.NewClient(c.getTokenClient())
	}
}

func (c *Client) getTokenClient() *http.Client {
	if c.Token == "" {
		return nil
	}
	return oauth2.NewClient(
		context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token}),
	)
}

func splitRepoPath(repoPath string) (string, string, error) {
	parts := strings.SplitN(repoPath, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("bad repo path %q", repoPath)
	}
	return parts[0], parts[1], nil
}

// SearchTopicRepos lists every repository in org carrying the topic. The
// result is sorted by name so a run is reproducible regardless of search
// ranking.
func (c *Client) SearchTopicRepos(org, topic string) ([]kozahub.RepoRef, error) {
	c.connect()
	ctx := context.Background()
	query := fmt.Sprintf("org:%s topic:%s", org, topic)
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var refs []kozahub.RepoRef
	for {
		result, resp, err := c.client.Search.Repositories(ctx, query, opts)
		if err != nil {
			return nil, err
		}
		for _, repo := range result.Repositories {
			refs = append(refs, kozahub.RepoRef{
				Name: repo.GetName(),
				Path: repo.GetFullName(),
				URL:  repo.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// LatestRelease returns the most recent published release, or nil when the
// repository has none.
func (c *Client) LatestRelease(repoPath string) (*kozahub.Release, error) {
	owner, name, err := splitRepoPath(repoPath)
	if err != nil {
		return nil, err
	}
	c.connect()
	ctx := context.Background()
	release, resp, err := c.client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &kozahub.Release{
		Tag:  release.GetTagName(),
		URL:  release.GetHTMLURL(),
		Date: release.GetPublishedAt().Time.UTC(),
	}, nil
}

// LatestWorkflowRun prefers the newest run of a workflow whose name
// contains "release" and falls back to the newest run of any workflow.
// Returns nil when the repository has no runs at all.
func (c *Client) LatestWorkflowRun(repoPath string) (*kozahub.WorkflowRun, error) {
	owner, name, err := splitRepoPath(repoPath)
	if err != nil {
		return nil, err
	}
	c.connect()
	ctx := context.Background()

	workflows, _, err := c.client.Actions.ListWorkflows(ctx, owner, name, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, err
	}
	for _, workflow := range workflows.Workflows {
		if !strings.Contains(strings.ToLower(workflow.GetName()), "release") {
			continue
		}
		runs, _, err := c.client.Actions.ListWorkflowRunsByID(ctx, owner, name, workflow.GetID(), &github.ListWorkflowRunsOptions{
			ListOptions: github.ListOptions{PerPage: 1},
		})
		if err != nil {
			return nil, err
		}
		if runs.GetTotalCount() > 0 {
			return convertRun(runs.WorkflowRuns[0]), nil
		}
		break
	}

	runs, _, err := c.client.Actions.ListRepositoryWorkflowRuns(ctx, owner, name, &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, err
	}
	if runs.GetTotalCount() == 0 {
		return nil, nil
	}
	return convertRun(runs.WorkflowRuns[0]), nil
}

func convertRun(run *github.WorkflowRun) *kozahub.WorkflowRun {
	return &kozahub.WorkflowRun{
		URL:        run.GetHTMLURL(),
		Conclusion: run.Conclusion,
		Date:       run.GetCreatedAt().Time.UTC(),
	}
}

// FileContent fetches one file from the repository's default branch.
func (c *Client) FileContent(repoPath, filePath string) (string, error) {
	owner, name, err := splitRepoPath(repoPath)
	if err != nil {
		return "", err
	}
	c.connect()
	ctx := context.Background()
	content, _, _, err := c.client.Repositories.GetContents(ctx, owner, name, filePath, nil)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", fmt.Errorf("%s is not a file", filePath)
	}
	return content.GetContent()
}

// ListCommitSHAs returns the default-branch commit history, newest first.
func (c *Client) ListCommitSHAs(repoPath string) ([]string, error) {
	owner, name, err := splitRepoPath(repoPath)
	if err != nil {
		return nil, err
	}
	c.connect()
	ctx := context.Background()
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var shas []string
	for {
		commits, resp, err := c.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, err
		}
		for _, commit := range commits {
			shas = append(shas, commit.GetSHA())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return shas, nil
}
