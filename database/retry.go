package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry context errors (timeout, cancellation)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// Don't retry "no rows" errors
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	// Check for PostgreSQL specific errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// Constraint violations and data integrity errors never succeed on retry
		case strings.HasPrefix(pgErr.Code, "23"):
			return false
		// Syntax and access rule violations
		case strings.HasPrefix(pgErr.Code, "42"):
			return false
		// Data exceptions (bad casts, overflow, malformed values)
		case strings.HasPrefix(pgErr.Code, "22"):
			return false
		// Serialization failures and deadlocks are worth retrying
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return true
		// Connection exceptions
		case strings.HasPrefix(pgErr.Code, "08"):
			return true
		// Insufficient resources (too many connections etc.)
		case strings.HasPrefix(pgErr.Code, "53"):
			return true
		default:
			return false
		}
	}

	// Network level failures
	errStr := err.Error()
	for _, s := range []string{"EOF", "connection refused", "connection reset", "broken pipe", "timeout"} {
		if strings.Contains(errStr, s) {
			return true
		}
	}

	return false
}

// WithRetry executes a database operation, retrying transient failures with
// exponential backoff. Non-retryable errors are returned immediately.
func WithRetry(ctx context.Context, operation func() error) error {
	cfg := DefaultRetryConfig()

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts || !isRetryableError(lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return lastErr
}
