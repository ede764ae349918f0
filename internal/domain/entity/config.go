package entity

import (
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	GitHub   GitHubConfig   `json:"github" yaml:"github"`
	Defaults DefaultsConfig `json:"default_values" yaml:"default_values"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// GitHubConfig contains GitHub-related configuration
// Note: GitHub token must be provided via GITHUB_TOKEN environment variable
type GitHubConfig struct {
	Repository       string `json:"repository,omitempty" yaml:"repository,omitempty"`
	BaseURL          string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSec       int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	RateLimit        int    `json:"rate_limit_per_hour,omitempty" yaml:"rate_limit_per_hour,omitempty"`
	MaxRetries       int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	PageSize         int    `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	MaxSearchResults int    `json:"max_search_results,omitempty" yaml:"max_search_results,omitempty"`
	UserAgent        string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// DefaultsConfig holds values used when the command line leaves them out
type DefaultsConfig struct {
	Labels    []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty" yaml:"assignees,omitempty"`
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// Timeout returns the HTTP timeout for tracker calls
func (c *Config) Timeout() time.Duration {
	if c.GitHub.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.GitHub.TimeoutSec) * time.Second
}

// GetLabels returns the default labels with whitespace trimmed
func (c *Config) GetLabels() []string {
	return trimAll(c.Defaults.Labels)
}

// GetAssignees returns the default assignees with whitespace trimmed
func (c *Config) GetAssignees() []string {
	return trimAll(c.Defaults.Assignees)
}

// SplitList splits a comma-separated flag value, dropping empty entries
func SplitList(value string) []string {
	return trimAll(strings.Split(value, ","))
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
