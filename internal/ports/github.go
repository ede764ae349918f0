package ports

import (
	"context"

	"github-issue-upsert/internal/domain/entity"
)

// IssueTracker defines the remote calls an upsert needs
type IssueTracker interface {
	// SearchOpenIssues runs a keyword search over open issue titles in one
	// repository. Results are candidates only; titles may not match exactly.
	SearchOpenIssues(ctx context.Context, repoFullName, titleKeyword string) ([]*entity.Issue, error)

	UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) (*entity.Issue, error)
	CreateIssue(ctx context.Context, owner, repo, title, body string, assignees, labels []string) (*entity.Issue, error)
}

// IssueUpserter defines the update-or-create operation
type IssueUpserter interface {
	// Upsert returns a *entity.TrackerError when a remote call fails
	Upsert(ctx context.Context, repo entity.RepositoryRef, req entity.UpsertRequest) (*entity.UpsertOutcome, error)

	// Run performs the upsert and logs the outcome or the failure
	Run(ctx context.Context, repo entity.RepositoryRef, req entity.UpsertRequest)
}
