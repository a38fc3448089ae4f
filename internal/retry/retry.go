// Package retry reruns transient operations, mainly scraper HTTP fetches.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls the retry schedule. With Backoff the wait grows linearly
// with the attempt number (Delay, 2*Delay, ...), which is enough for the
// polite-crawl pauses the news sites expect.
type Config struct {
	MaxAttempts int           // <1 is treated as a single attempt
	Delay       time.Duration // wait between attempts
	Backoff     bool
}

// WithRetry runs fn until it succeeds or the attempts are spent. Waiting is
// cut short by ctx; the final error wraps fn's last failure.
func WithRetry(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		delay := cfg.Delay
		if cfg.Backoff {
			delay = time.Duration(attempt) * cfg.Delay
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
