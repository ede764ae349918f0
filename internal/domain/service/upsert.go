package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

var _ ports.IssueUpserter = (*UpsertService)(nil)

// UpsertService keeps one open issue per title up to date.
//
// The search and the mutation are separate remote calls with nothing locking
// the title in between, so two concurrent upserts for a title with no open
// issue can both create one. Callers that need a single issue under
// concurrency must serialize upserts themselves.
type UpsertService struct {
	tracker ports.IssueTracker
	logger  *log.Logger
}

// NewUpsertService creates a new upsert service
func NewUpsertService(tracker ports.IssueTracker) *UpsertService {
	return &UpsertService{
		tracker: tracker,
		logger:  log.Default(),
	}
}

// WithLogger replaces the logger used by Run
func (s *UpsertService) WithLogger(logger *log.Logger) *UpsertService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Upsert updates the body of the open issue titled req.Title, or creates the
// issue when none exists. Labels and assignees are only sent on creation.
func (s *UpsertService) Upsert(ctx context.Context, repo entity.RepositoryRef, req entity.UpsertRequest) (*entity.UpsertOutcome, error) {
	if repo.IsZero() {
		return nil, fmt.Errorf("%w: repository is required", entity.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.tracker.SearchOpenIssues(ctx, repo.FullName(), req.Title)
	if err != nil {
		return nil, &entity.TrackerError{Op: entity.TrackerOpSearch, Repo: repo.FullName(), Err: err}
	}

	if match := findExactTitle(candidates, req.Title); match != nil {
		updated, err := s.tracker.UpdateIssueBody(ctx, repo.Owner, repo.Repo, match.Number, req.Body)
		if err != nil {
			return nil, &entity.TrackerError{Op: entity.TrackerOpUpdate, Repo: repo.FullName(), IssueNumber: match.Number, Err: err}
		}
		return outcome(entity.ActionUpdated, match, updated), nil
	}

	created, err := s.tracker.CreateIssue(ctx, repo.Owner, repo.Repo, req.Title, req.Body, req.Assignees, req.Labels)
	if err != nil {
		return nil, &entity.TrackerError{Op: entity.TrackerOpCreate, Repo: repo.FullName(), Err: err}
	}
	return outcome(entity.ActionCreated, nil, created), nil
}

// Run is Upsert for callers that only want a log line. Failures are logged
// and never returned.
func (s *UpsertService) Run(ctx context.Context, repo entity.RepositoryRef, req entity.UpsertRequest) {
	result, err := s.Upsert(ctx, repo, req)
	if err != nil {
		var trackerErr *entity.TrackerError
		if errors.As(err, &trackerErr) {
			s.logger.Printf("❌ Failed to upsert issue %q in %s (%s): %v", req.Title, repo, trackerErr.Op, trackerErr.Err)
			return
		}
		s.logger.Printf("❌ Failed to upsert issue %q in %s: %v", req.Title, repo, err)
		return
	}

	s.logger.Printf("✅ Issue #%d %s in %s", result.IssueNumber, result.Action, repo)
}

// findExactTitle returns the first candidate whose title equals title
func findExactTitle(candidates []*entity.Issue, title string) *entity.Issue {
	for _, issue := range candidates {
		if issue != nil && issue.Title == title {
			return issue
		}
	}
	return nil
}

func outcome(action entity.UpsertAction, match, result *entity.Issue) *entity.UpsertOutcome {
	out := &entity.UpsertOutcome{Action: action}
	if match != nil {
		out.IssueNumber = match.Number
		out.URL = match.URL
	}
	if result != nil {
		if result.Number != 0 {
			out.IssueNumber = result.Number
		}
		if result.URL != "" {
			out.URL = result.URL
		}
	}
	return out
}
