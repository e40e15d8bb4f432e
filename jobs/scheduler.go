package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"agency-site-server/logger"
)

// Job is a unit of periodic maintenance
type Job interface {
	Name() string
	Schedule() string // cron spec, e.g. "@daily"
	Run(ctx context.Context) error
}

// Scheduler runs jobs on their cron schedules
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewScheduler creates a scheduler whose runs are each bounded by timeout
func NewScheduler(timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	log := cronLogger{}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)), cron.WithLogger(log)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Register adds a job
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule(), func() { s.run(job) })
	if err != nil {
		return err
	}
	logger.Info().Str("job", job.Name()).Str("schedule", job.Schedule()).Msg("Job registered")
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
		return
	}
	logger.Debug().Str("job", job.Name()).Dur("took", time.Since(start)).Msg("Job finished")
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop cancels running jobs and waits for them until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logger.Warn().Msg("Scheduler stop timed out")
	}
	logger.Info().Msg("Scheduler stopped")
}

// cronLogger routes cron's own messages to zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
