package storage

import (
	"context"
	"errors"
	"time"

	"agency-site-server/logger"
)

// RetryPolicy bounds UploadWithRetry
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy is three attempts, one second apart, growing linearly
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: time.Second}

// UploadWithRetry repeats retryable upload failures, waiting attempt×Backoff
// between tries, and returns the last error once attempts run out.
func UploadWithRetry(ctx context.Context, store ImageStore, input *UploadInput, policy RetryPolicy) (*UploadResult, error) {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := store.Upload(ctx, input)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == attempts {
			break
		}

		wait := time.Duration(attempt) * policy.Backoff
		logger.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Str("file", input.Filename).Msg("Image upload failed, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Retryable()
	}
	// anything else is a transport failure
	return true
}
