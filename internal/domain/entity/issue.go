package entity

import (
	"errors"
	"fmt"
	"strings"
)

// IssueState represents the state of a tracker issue
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

// Issue represents an issue as reported by the tracker
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	URL       string     `json:"url,omitempty"`
	Body      string     `json:"body,omitempty"`
	State     IssueState `json:"state,omitempty"`
	Labels    []string   `json:"labels,omitempty"`
	Assignees []string   `json:"assignees,omitempty"`
}

// IsOpen returns true if the issue is not closed
func (i *Issue) IsOpen() bool {
	return i.State != IssueStateClosed
}

// ErrInvalidRequest is returned when an upsert request cannot be sent to the tracker
var ErrInvalidRequest = errors.New("invalid upsert request")

// UpsertRequest describes the issue that should exist after an upsert.
// Title is the exact-match key.
type UpsertRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Assignees []string `json:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// Validate checks that the request can be used as an upsert key
func (r UpsertRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	return nil
}

// UpsertAction tells which remote mutation an upsert performed
type UpsertAction string

const (
	ActionCreated UpsertAction = "created"
	ActionUpdated UpsertAction = "updated"
)

// UpsertOutcome is the result of a successful upsert
type UpsertOutcome struct {
	Action      UpsertAction `json:"action"`
	IssueNumber int          `json:"issue_number"`
	URL         string       `json:"url,omitempty"`
}
