package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-site-server/middleware"
)

type fakeTokens struct {
	calls int
	err   error
}

func (f *fakeTokens) CleanupExpiredTokens(context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

func TestTokenCleanupJob(t *testing.T) {
	tokens := &fakeTokens{}
	job := NewTokenCleanupJob(tokens)

	assert.Equal(t, "@daily", job.Schedule())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, tokens.calls)

	tokens.err = errors.New("db down")
	assert.Error(t, job.Run(context.Background()))
}

func TestLimiterCleanupJob(t *testing.T) {
	limiter := middleware.NewRateLimiter()
	limiter.GetLimiter("/api/v1/reviews|10.0.0.1", 1, 1)

	job := NewLimiterCleanupJob(limiter, time.Nanosecond)
	time.Sleep(time.Millisecond)
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 0, limiter.Len())
}

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Name() string     { return "counting" }
func (j *countingJob) Schedule() string { return "@every 1s" }
func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestScheduler_RunsRegisteredJobs(t *testing.T) {
	s := NewScheduler(time.Second)
	job := &countingJob{}
	require.NoError(t, s.Register(job))

	s.Start()
	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

type badJob struct{}

func (badJob) Name() string              { return "bad" }
func (badJob) Schedule() string          { return "every tuesday" }
func (badJob) Run(context.Context) error { return nil }

func TestScheduler_RejectsBadSpec(t *testing.T) {
	assert.Error(t, NewScheduler(time.Second).Register(badJob{}))
}
