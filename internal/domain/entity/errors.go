package entity

import "fmt"

// TrackerOp names the remote call that failed
type TrackerOp string

const (
	TrackerOpSearch TrackerOp = "search"
	TrackerOpUpdate TrackerOp = "update"
	TrackerOpCreate TrackerOp = "create"
)

// TrackerError wraps any failure reported by the issue tracker
type TrackerError struct {
	Op          TrackerOp
	Repo        string
	IssueNumber int
	Err         error
}

func (e *TrackerError) Error() string {
	if e.IssueNumber > 0 {
		return fmt.Sprintf("tracker %s failed for %s#%d: %v", e.Op, e.Repo, e.IssueNumber, e.Err)
	}
	return fmt.Sprintf("tracker %s failed for %s: %v", e.Op, e.Repo, e.Err)
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}
