package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AdminAPIRateLimiter enforces a minimum delay between calls to the Admin
// GraphQL endpoint. The platform throttles admin clients, and a type-ahead
// search box can otherwise burst requests on every keystroke.
type AdminAPIRateLimiter struct {
	minimumDelay    time.Duration
	lastRequestTime time.Time
	mutex           sync.Mutex
	requestCount    int64
}

// NewAdminAPIRateLimiter creates a rate limiter with the specified minimum
// delay between requests.
func NewAdminAPIRateLimiter(minimumDelay time.Duration) *AdminAPIRateLimiter {
	return &AdminAPIRateLimiter{
		minimumDelay:    minimumDelay,
		lastRequestTime: time.Now().Add(-minimumDelay),
	}
}

// Wait blocks until the minimum delay has elapsed since the last request.
func (limiter *AdminAPIRateLimiter) Wait() {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	elapsed := time.Since(limiter.lastRequestTime)
	if elapsed < limiter.minimumDelay {
		remaining := limiter.minimumDelay - elapsed

		logrus.WithFields(logrus.Fields{
			"component":       "AdminAPIRateLimiter",
			"remaining_delay": remaining,
			"request_count":   limiter.requestCount + 1,
		}).Debug("Enforcing Admin API rate limit delay")

		time.Sleep(remaining)
	}

	limiter.lastRequestTime = time.Now()
	limiter.requestCount++
}

// RequestCount returns the total number of requests processed.
func (limiter *AdminAPIRateLimiter) RequestCount() int64 {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	return limiter.requestCount
}
