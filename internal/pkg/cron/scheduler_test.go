package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsOnStartAndStops(t *testing.T) {
	ran := make(chan struct{}, 1)
	var calls atomic.Int32

	s := NewScheduler()
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("ignored")
	})
	s.AddJob("disabled", 0, func(context.Context) error {
		t.Error("job without interval must not run")
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
	assert.Equal(t, int32(1), calls.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s := NewScheduler()
	s.AddJob("wait", time.Hour, func(ctx context.Context) error { return nil })
	s.Start(ctx)
	cancel()

	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	NewScheduler().Stop()
}
