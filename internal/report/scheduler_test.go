package report

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingJob struct {
	runs int
	err  error
	stop func()
}

func (j *countingJob) Run(context.Context) error {
	j.runs++
	if j.stop != nil && j.runs >= 2 {
		j.stop()
	}
	return j.err
}

func TestUntilNextMidnight(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Duration
	}{
		{time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Minute},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), 12 * time.Hour},
		{time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC), 12 * time.Hour}, // leap year
	}
	for _, tc := range cases {
		if got := untilNextMidnight(tc.now); got != tc.want {
			t.Fatalf("untilNextMidnight(%s) = %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestSchedulerFiresAtBoundaryAndReschedules(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &countingJob{stop: cancel}
	s := NewScheduler(job)

	clock := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	var waits []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		waits = append(waits, d)
		clock = clock.Add(d) // simulate the boundary arriving
		return nil
	}

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if job.runs != 2 {
		t.Fatalf("job ran %d times, want 2", job.runs)
	}
	if waits[0] != 2*time.Hour {
		t.Fatalf("first wait %s, want 2h", waits[0])
	}
	if waits[1] != 24*time.Hour {
		t.Fatalf("second wait %s, want 24h", waits[1])
	}
}

func TestSchedulerSurvivesJobFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &countingJob{err: errors.New("report exploded"), stop: cancel}
	s := NewScheduler(job)
	s.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	s.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }

	_ = s.Run(ctx)
	if job.runs < 2 {
		t.Fatalf("loop stopped after a failing job: %d runs", job.runs)
	}
}
