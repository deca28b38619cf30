// Package report runs the nightly summary: a self-rescheduling
// midnight timer and the job it fires.
package report

import (
	"context"
	"log/slog"
	"time"
)

// Runner is the work fired at each midnight boundary.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler sleeps until the next local midnight, fires the job and
// reschedules. The wait is recomputed from the current clock on every
// cycle, so suspended wall-clock time never accumulates drift; a
// boundary missed while the process is down is simply skipped.
type Scheduler struct {
	job Runner

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewScheduler(job Runner) *Scheduler {
	return &Scheduler{
		job:   job,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Run loops until ctx is cancelled. Job failures are logged and never
// stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		wait := untilNextMidnight(s.now())
		slog.InfoContext(ctx, "Daily report scheduled", "wait", wait.Round(time.Second))

		if err := s.sleep(ctx, wait); err != nil {
			return err
		}

		if err := s.job.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "Daily report failed", "error", err)
		}
	}
}

// untilNextMidnight is "midnight of (now + 1 day) minus now" in now's
// location.
func untilNextMidnight(now time.Time) time.Duration {
	tomorrow := now.AddDate(0, 0, 1)
	next := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
