package entity

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies the repository an upsert targets
type RepositoryRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// ParseRepositoryRef parses an "owner/repo" string
func ParseRepositoryRef(fullName string) (RepositoryRef, error) {
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, fmt.Errorf("invalid repository %q: expected owner/repo", fullName)
	}

	return RepositoryRef{Owner: parts[0], Repo: parts[1]}, nil
}

// FullName returns the "owner/repo" form used by search queries
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// IsZero returns true if neither owner nor repo is set
func (r RepositoryRef) IsZero() bool {
	return r.Owner == "" && r.Repo == ""
}

func (r RepositoryRef) String() string {
	return r.FullName()
}
