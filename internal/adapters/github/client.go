package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v58/github"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github-issue-upsert/internal/domain/entity"
)

// Client provides access to the GitHub issues API with rate limiting and retries
type Client struct {
	client      *github.Client
	rateLimiter *RateLimiter
	stats       *ClientStats
	config      entity.GitHubConfig
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new GitHub API client. An empty token sends
// unauthenticated requests.
func NewClient(ctx context.Context, token string, config *entity.Config) (*Client, error) {
	if config == nil {
		config = &entity.Config{}
	}
	timeout := config.Timeout()

	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = timeout
	}

	client := github.NewClient(httpClient)
	if config.GitHub.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(config.GitHub.BaseURL, config.GitHub.BaseURL)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "invalid github.base_url %q", config.GitHub.BaseURL)
		}
	}
	if config.GitHub.UserAgent != "" {
		client.UserAgent = config.GitHub.UserAgent
	}

	return &Client{
		client:      client,
		rateLimiter: NewRateLimiter(config.GitHub.RateLimit),
		stats:       &ClientStats{},
		config:      config.GitHub,
		sleep:       sleepContext,
	}, nil
}

// GetStats returns a copy of the current client statistics
func (c *Client) GetStats() ClientStats {
	return c.stats.GetStats()
}

// searchIssues runs an issue search and follows result pages
func (c *Client) searchIssues(ctx context.Context, query string) ([]*github.Issue, error) {
	if query == "" {
		return nil, fmt.Errorf("no search query specified")
	}

	log.Printf("🔍 Searching issues with query: %s", query)

	pageSize := c.config.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxResults := c.config.MaxSearchResults
	if maxResults <= 0 {
		maxResults = 1000
	}

	var allIssues []*github.Issue
	opt := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		var result *github.IssuesSearchResult
		var resp *github.Response

		err := c.retryWithBackoff(ctx, func() error {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return pkgerrors.Wrap(err, "rate limit wait")
			}

			c.stats.IncrementSearch()
			var err error
			result, resp, err = c.client.Search.Issues(ctx, query, opt)
			c.updateRateLimitStats(resp)
			return err
		})
		if err != nil {
			return nil, pkgerrors.Wrap(err, "error searching issues")
		}

		if result.GetIncompleteResults() {
			log.Printf("⚠️  Search results for %q are incomplete, an existing issue may be missed", query)
		}
		allIssues = append(allIssues, result.Issues...)

		if len(allIssues) >= maxResults {
			log.Printf("⚠️  Limiting search results to %d issues", maxResults)
			allIssues = allIssues[:maxResults]
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	log.Printf("📊 Found %d issues matching search query", len(allIssues))
	return allIssues, nil
}

// editIssueBody replaces the body of an issue, leaving every other field as is
func (c *Client) editIssueBody(ctx context.Context, owner, repo string, number int, body string) (*github.Issue, error) {
	log.Printf("📝 Updating body of issue #%d in %s/%s", number, owner, repo)

	request := &github.IssueRequest{Body: github.String(body)}

	var issue *github.Issue
	err := c.retryWithBackoff(ctx, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return pkgerrors.Wrap(err, "rate limit wait")
		}

		c.stats.IncrementUpdate()
		var resp *github.Response
		var err error
		issue, resp, err = c.client.Issues.Edit(ctx, owner, repo, number, request)
		c.updateRateLimitStats(resp)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "error updating issue #%d", number)
	}

	return issue, nil
}

// createIssue opens a new issue. It is sent once: retrying after a lost
// response could open a second issue with the same title.
func (c *Client) createIssue(ctx context.Context, owner, repo string, request *github.IssueRequest) (*github.Issue, error) {
	log.Printf("🆕 Creating issue %q in %s/%s", request.GetTitle(), owner, repo)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "rate limit wait")
	}

	c.stats.IncrementCreate()
	issue, resp, err := c.client.Issues.Create(ctx, owner, repo, request)
	c.updateRateLimitStats(resp)
	if err != nil {
		c.stats.IncrementError()
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusGone {
			return nil, pkgerrors.Errorf("issues are disabled on %s/%s", owner, repo)
		}
		return nil, pkgerrors.Wrap(err, "error creating issue")
	}

	return issue, nil
}

// retryWithBackoff retries an operation with quadratic backoff
func (c *Client) retryWithBackoff(ctx context.Context, operation func() error) error {
	maxRetries := c.config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			c.stats.IncrementRetry()
			delay := time.Duration(i*i) * time.Second
			log.Printf("🔄 Retrying operation after %v (attempt %d/%d)", delay, i+1, maxRetries)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || i == maxRetries-1 || !isRetryableError(lastErr) {
			break
		}
		log.Printf("⚠️  Operation failed, will retry: %v", lastErr)
	}

	c.stats.IncrementError()
	return lastErr
}

// isRetryableError checks if an error is worth another attempt. Caller
// cancellation is checked on ctx by retryWithBackoff, not here.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}

	errorStr := strings.ToLower(err.Error())
	retryableErrors := []string{
		"timeout",
		"connection reset",
		"connection refused",
		"temporary failure",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errorStr, retryable) {
			return true
		}
	}

	return false
}

// updateRateLimitStats records quota information from a response
func (c *Client) updateRateLimitStats(resp *github.Response) {
	if resp == nil {
		return
	}

	if resp.Rate.Limit > 0 {
		c.stats.UpdateQuota(resp.Rate.Remaining, resp.Rate.Reset.Time)
	}

	if resp.Response != nil && resp.StatusCode == http.StatusTooManyRequests {
		c.stats.IncrementRateLimitHit()
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
