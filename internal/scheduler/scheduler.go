package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

// Job is one unit of background work. The returned count is only logged.
type Job func(ctx context.Context) (int, error)

type Recorder interface {
	ObserveJob(job string, duration time.Duration, ok bool)
}

type Scheduler struct {
	cron     *cron.Cron
	ctx      context.Context
	timeout  time.Duration
	recorder Recorder
	logger   logger.Logger
}

// New returns a scheduler whose jobs run with ctx and are cut off after timeout.
func New(ctx context.Context, timeout time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		ctx:     ctx,
		timeout: timeout,
		logger:  log,
	}
}

func (s *Scheduler) WithRecorder(r Recorder) *Scheduler {
	s.recorder = r
	return s
}

// Add registers job under name on a cron spec such as "@every 1h" or "0 3 * * *".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return err
	}
	s.logger.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := job(ctx)
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveJob(name, elapsed, err == nil)
	}
	if err != nil {
		s.logger.Error("job failed", "job", name, "processed", n, "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("job finished", "job", name, "processed", n, "duration", elapsed)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Error("scheduler stop timed out", "error", ctx.Err())
	}
}
