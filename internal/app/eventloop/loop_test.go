package eventloop_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
)

func TestDo_RunsFn(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	called := false

	if err := loop.Do(context.Background(), func() { called = true }); err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if !called {
		t.Error("fn was not called")
	}
}

func TestDo_OneEventAtATime(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = loop.Do(context.Background(), func() {
				n := running.Add(1)
				for {
					old := maxRunning.Load()
					if n <= old || maxRunning.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
			})
		}()
	}
	wg.Wait()

	if got := maxRunning.Load(); got != 1 {
		t.Errorf("max concurrent events = %d, want 1", got)
	}
}

func TestDo_CanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	entered := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = loop.Do(context.Background(), func() {
			close(entered)
			<-release
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	called := false
	err := loop.Do(ctx, func() { called = true })
	close(release)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do() error = %v, want DeadlineExceeded", err)
	}
	if called {
		t.Error("fn should not run when the loop could not be entered")
	}
}

func TestDo_ReleasesAfterPanic(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()

	func() {
		defer func() { _ = recover() }()
		_ = loop.Do(context.Background(), func() { panic("boom") })
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := loop.Do(ctx, func() {}); err != nil {
		t.Fatalf("Do() after panic error = %v, want nil", err)
	}
}

func TestCall_ReturnsValueAndError(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	errBoom := errors.New("boom")

	got, err := eventloop.Call(context.Background(), loop, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Call() = (%d, %v), want (42, nil)", got, err)
	}

	_, err = eventloop.Call(context.Background(), loop, func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("Call() error = %v, want %v", err, errBoom)
	}
}

func TestCall_CanceledContext(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = loop.Do(context.Background(), func() {
			close(entered)
			<-release
		})
	}()
	<-entered
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := eventloop.Call(ctx, loop, func() (string, error) { return "ran", nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Call() error = %v, want Canceled", err)
	}
	if got != "" {
		t.Errorf("Call() value = %q, want zero value", got)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	loop := eventloop.New()
	if loop.Name() != "event-loop" {
		t.Errorf("Name() = %q, want %q", loop.Name(), "event-loop")
	}
	if err := loop.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() on idle loop = %v, want nil", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = loop.Do(context.Background(), func() {
			close(entered)
			<-release
		})
	}()
	<-entered
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := loop.HealthCheck(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("HealthCheck() on busy loop = %v, want DeadlineExceeded", err)
	}
}
