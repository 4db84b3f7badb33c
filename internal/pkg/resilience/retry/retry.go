// Package retry provides a configurable retry mechanism for operations that
// may fail temporarily, wrapping the retry-go package behind a small
// interface with functional options.
//
// Delays grow with exponential backoff. The zero configuration (3 attempts,
// 1s base delay, 5s cap) suits short node hiccups; the head ticker layers an
// outer loop on top of this for its never-give-up watch semantics.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation with automatic retries on failure.
type Retry interface {
	// Execute runs operation, retrying with backoff until it succeeds, the
	// attempt budget is spent, or ctx is done. The operation should be
	// idempotent. The context error is returned when ctx ends the run.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts uint          // maximum number of attempts, including the first
	delay    time.Duration // base delay between attempts
	maxDelay time.Duration // backoff cap
}

// Option is a functional option for configuring the retry mechanism.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry configured with the provided options. Defaults:
// 3 attempts, 1s base delay, 5s maximum delay, exponential backoff, only the
// last error reported.
func New(opts ...Option) Retry {
	cfg := config{
		attempts: 3,
		delay:    1 * time.Second,
		maxDelay: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
}

// WithAttempts sets the maximum number of attempts, including the initial
// one. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay used for the first retry. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}
