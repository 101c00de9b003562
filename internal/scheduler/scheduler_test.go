package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedDelay time.Duration

func (d fixedDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := 0
	job := func(context.Context) error {
		runs++
		if runs == 3 {
			cancel()
		}
		// Failures are logged, not fatal.
		return errors.New("boom")
	}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, fixedDelay(5*time.Millisecond), time.UTC, job) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestRunStopsBeforeFirstTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, fixedDelay(time.Hour), nil, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("job must not run when cancelled before the first tick")
	}
}
