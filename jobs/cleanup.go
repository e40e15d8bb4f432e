package jobs

import (
	"context"
	"time"

	"agency-site-server/logger"
)

type tokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// TokenCleanupJob deletes expired refresh tokens once a day
type TokenCleanupJob struct {
	tokens tokenCleaner
}

func NewTokenCleanupJob(tokens tokenCleaner) *TokenCleanupJob {
	return &TokenCleanupJob{tokens: tokens}
}

func (j *TokenCleanupJob) Name() string     { return "token-cleanup" }
func (j *TokenCleanupJob) Schedule() string { return "@daily" }

func (j *TokenCleanupJob) Run(ctx context.Context) error {
	n, err := j.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info().Int64("removed", n).Msg("Expired refresh tokens removed")
	}
	return nil
}

type limiterCleaner interface {
	Cleanup(idle time.Duration) int
}

// LimiterCleanupJob forgets rate-limit buckets of clients gone quiet
type LimiterCleanupJob struct {
	limiter limiterCleaner
	idle    time.Duration
}

func NewLimiterCleanupJob(limiter limiterCleaner, idle time.Duration) *LimiterCleanupJob {
	return &LimiterCleanupJob{limiter: limiter, idle: idle}
}

func (j *LimiterCleanupJob) Name() string     { return "rate-limiter-cleanup" }
func (j *LimiterCleanupJob) Schedule() string { return "@every 10m" }

func (j *LimiterCleanupJob) Run(context.Context) error {
	if n := j.limiter.Cleanup(j.idle); n > 0 {
		logger.Debug().Int("removed", n).Msg("Idle rate-limit buckets removed")
	}
	return nil
}
