package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler()

	var a, b atomic.Int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		a.Add(1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		b.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

func TestStartRunsJobImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()

	// The job runs once on start before the first tick.
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
