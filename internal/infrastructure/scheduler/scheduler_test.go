package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(time.Second)
	err := s.Add("broken", "every now and then", func(ctx context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestScheduledJobRuns(t *testing.T) {
	s := New(time.Second)
	var runs int32
	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestRunNowBoundsJobContext(t *testing.T) {
	s := New(20 * time.Millisecond)
	var deadline bool
	s.RunNow("slow", func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		<-ctx.Done()
		return errors.New("timed out")
	})
	assert.True(t, deadline)
}

func TestStopCancelsRunningJobs(t *testing.T) {
	s := New(time.Minute)
	started := make(chan struct{})
	finished := make(chan struct{})
	go s.RunNow("long", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(finished)
		return ctx.Err()
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("job was not cancelled")
	}
}
