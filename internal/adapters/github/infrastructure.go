package github

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientStats tracks API usage statistics
type ClientStats struct {
	SearchCalls    int
	UpdateCalls    int
	CreateCalls    int
	ErrorsCount    int
	RetryCount     int
	RateLimitHits  int
	LastAPICall    time.Time
	RemainingQuota int
	QuotaResetTime time.Time
	mu             sync.RWMutex
}

// GetStats returns a copy of the current client statistics
func (s *ClientStats) GetStats() ClientStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ClientStats{
		SearchCalls:    s.SearchCalls,
		UpdateCalls:    s.UpdateCalls,
		CreateCalls:    s.CreateCalls,
		ErrorsCount:    s.ErrorsCount,
		RetryCount:     s.RetryCount,
		RateLimitHits:  s.RateLimitHits,
		LastAPICall:    s.LastAPICall,
		RemainingQuota: s.RemainingQuota,
		QuotaResetTime: s.QuotaResetTime,
	}
}

// TotalCalls returns the number of API requests sent
func (s *ClientStats) TotalCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SearchCalls + s.UpdateCalls + s.CreateCalls
}

func (s *ClientStats) recordCall(counter *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	s.LastAPICall = time.Now()
}

// IncrementSearch safely increments the search counter
func (s *ClientStats) IncrementSearch() { s.recordCall(&s.SearchCalls) }

// IncrementUpdate safely increments the update counter
func (s *ClientStats) IncrementUpdate() { s.recordCall(&s.UpdateCalls) }

// IncrementCreate safely increments the create counter
func (s *ClientStats) IncrementCreate() { s.recordCall(&s.CreateCalls) }

// IncrementError safely increments the error counter
func (s *ClientStats) IncrementError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ErrorsCount++
}

// IncrementRetry safely increments the retry counter
func (s *ClientStats) IncrementRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RetryCount++
}

// IncrementRateLimitHit safely increments the rate limit hit counter
func (s *ClientStats) IncrementRateLimitHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RateLimitHits++
}

// UpdateQuota updates the rate limit quota information
func (s *ClientStats) UpdateQuota(remaining int, resetTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RemainingQuota = remaining
	s.QuotaResetTime = resetTime
}

// RateLimiter wraps the rate limiter with additional functionality
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerHour int) *RateLimiter {
	if requestsPerHour <= 0 {
		requestsPerHour = 5000 // Default GitHub rate limit
	}

	// Convert to requests per second with burst capacity
	rps := rate.Limit(float64(requestsPerHour) / 3600)
	limiter := rate.NewLimiter(rps, 10)

	return &RateLimiter{
		limiter: limiter,
	}
}

// Wait waits for the rate limiter to allow the request
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
