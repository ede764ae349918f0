package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v58/github"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

var _ ports.IssueTracker = (*Tracker)(nil)

// Tracker implements the IssueTracker interface on top of the GitHub API
type Tracker struct {
	client *Client
}

// NewTracker creates a new GitHub tracker adapter
func NewTracker(client *Client) *Tracker {
	return &Tracker{
		client: client,
	}
}

// SearchOpenIssues searches open issues whose title contains titleKeyword
func (t *Tracker) SearchOpenIssues(ctx context.Context, repoFullName, titleKeyword string) ([]*entity.Issue, error) {
	githubIssues, err := t.client.searchIssues(ctx, BuildTitleSearchQuery(repoFullName, titleKeyword))
	if err != nil {
		return nil, err
	}

	return convertGitHubIssuesToDomain(githubIssues), nil
}

// UpdateIssueBody replaces the body of an existing issue
func (t *Tracker) UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) (*entity.Issue, error) {
	ghIssue, err := t.client.editIssueBody(ctx, owner, repo, number, body)
	if err != nil {
		return nil, err
	}

	return convertGitHubIssue(ghIssue), nil
}

// CreateIssue opens a new issue with the given labels and assignees
func (t *Tracker) CreateIssue(ctx context.Context, owner, repo, title, body string, assignees, labels []string) (*entity.Issue, error) {
	request := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if len(labels) > 0 {
		request.Labels = &labels
	}
	if len(assignees) > 0 {
		request.Assignees = &assignees
	}

	ghIssue, err := t.client.createIssue(ctx, owner, repo, request)
	if err != nil {
		return nil, err
	}

	return convertGitHubIssue(ghIssue), nil
}

// BuildTitleSearchQuery builds a search for open issues in repoFullName whose title contains title.
// Double quotes cannot be escaped inside a search phrase, so they are dropped;
// callers filter candidates by exact title afterwards.
func BuildTitleSearchQuery(repoFullName, title string) string {
	phrase := strings.Join(strings.Fields(strings.ReplaceAll(title, `"`, " ")), " ")
	return fmt.Sprintf(`repo:%s is:issue is:open in:title "%s"`, repoFullName, phrase)
}

// Helper methods

func convertGitHubIssuesToDomain(githubIssues []*github.Issue) []*entity.Issue {
	var issues []*entity.Issue

	for _, ghIssue := range githubIssues {
		if ghIssue == nil || ghIssue.Number == nil || ghIssue.Title == nil {
			continue
		}
		// The search endpoint returns pull requests alongside issues
		if ghIssue.IsPullRequest() {
			continue
		}

		issue := convertGitHubIssue(ghIssue)
		if !issue.IsOpen() {
			continue
		}
		issues = append(issues, issue)
	}

	return issues
}

func convertGitHubIssue(ghIssue *github.Issue) *entity.Issue {
	if ghIssue == nil {
		return nil
	}

	var labels []string
	for _, label := range ghIssue.Labels {
		if label.Name != nil {
			labels = append(labels, *label.Name)
		}
	}

	var assignees []string
	for _, user := range ghIssue.Assignees {
		if user.Login != nil {
			assignees = append(assignees, *user.Login)
		}
	}

	return &entity.Issue{
		Number:    ghIssue.GetNumber(),
		Title:     ghIssue.GetTitle(),
		URL:       ghIssue.GetHTMLURL(),
		Body:      ghIssue.GetBody(),
		State:     entity.IssueState(ghIssue.GetState()),
		Labels:    labels,
		Assignees: assignees,
	}
}
