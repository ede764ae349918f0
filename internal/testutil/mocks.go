// Package testutil provides shared test doubles for the ports.
package testutil

import (
	"context"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

var _ ports.IssueTracker = (*MockTracker)(nil)

// SearchCall records one SearchOpenIssues invocation
type SearchCall struct {
	RepoFullName string
	TitleKeyword string
}

// UpdateCall records one UpdateIssueBody invocation
type UpdateCall struct {
	Owner  string
	Repo   string
	Number int
	Body   string
}

// CreateCall records one CreateIssue invocation
type CreateCall struct {
	Owner     string
	Repo      string
	Title     string
	Body      string
	Assignees []string
	Labels    []string
}

// MockTracker is a test double for ports.IssueTracker.
// SearchResults is returned as is from every search.
type MockTracker struct {
	SearchResults []*entity.Issue
	SearchErr     error
	UpdateErr     error
	CreateErr     error
	NextNumber    int

	Searches []SearchCall
	Updates  []UpdateCall
	Creates  []CreateCall
}

// NewMockTracker creates a MockTracker returning the given search candidates
func NewMockTracker(candidates ...*entity.Issue) *MockTracker {
	return &MockTracker{
		SearchResults: candidates,
		NextNumber:    100,
	}
}

// SearchOpenIssues records the call and returns SearchResults
func (m *MockTracker) SearchOpenIssues(_ context.Context, repoFullName, titleKeyword string) ([]*entity.Issue, error) {
	m.Searches = append(m.Searches, SearchCall{RepoFullName: repoFullName, TitleKeyword: titleKeyword})
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults, nil
}

// UpdateIssueBody records the call and echoes the issue back
func (m *MockTracker) UpdateIssueBody(_ context.Context, owner, repo string, number int, body string) (*entity.Issue, error) {
	m.Updates = append(m.Updates, UpdateCall{Owner: owner, Repo: repo, Number: number, Body: body})
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return &entity.Issue{Number: number, Body: body, State: entity.IssueStateOpen}, nil
}

// CreateIssue records the call and returns an issue numbered NextNumber
func (m *MockTracker) CreateIssue(_ context.Context, owner, repo, title, body string, assignees, labels []string) (*entity.Issue, error) {
	m.Creates = append(m.Creates, CreateCall{
		Owner:     owner,
		Repo:      repo,
		Title:     title,
		Body:      body,
		Assignees: assignees,
		Labels:    labels,
	})
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	number := m.NextNumber
	m.NextNumber++
	return &entity.Issue{
		Number:    number,
		Title:     title,
		Body:      body,
		State:     entity.IssueStateOpen,
		Labels:    labels,
		Assignees: assignees,
	}, nil
}
