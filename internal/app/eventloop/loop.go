// Package eventloop serializes host events so the project core sees the
// single-threaded, run-to-completion execution it is written for.
//
// Every inbound event (form submission, drag event, view read) runs through
// Do. One event runs at a time; a store mutation and its whole listener
// fan-out finish before the next event starts. Waiting to enter the loop
// honours context cancellation; once an event is running it is never
// interrupted.
//
//	loop := eventloop.New()
//	err := loop.Do(ctx, func() { target.Drop(ev) })
//
// Do must not be called from inside an event: listeners already run inside
// the loop, and a nested Do would wait for itself.
package eventloop

import (
	"context"
)

// Loop runs events one at a time.
type Loop struct {
	turn chan struct{}
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{turn: make(chan struct{}, 1)}
}

// Do waits for the loop to be free, then runs fn to completion. If ctx ends
// while waiting, Do returns ctx.Err() without calling fn.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	select {
	case l.turn <- struct{}{}:
		defer func() { <-l.turn }()
	case <-ctx.Done():
		return ctx.Err()
	}

	fn()
	return nil
}

// Call runs fn on the loop and returns its results. The error is ctx.Err()
// when the loop could not be entered, otherwise fn's error.
func Call[R any](ctx context.Context, l *Loop, fn func() (R, error)) (R, error) {
	var (
		val   R
		fnErr error
	)
	if err := l.Do(ctx, func() { val, fnErr = fn() }); err != nil {
		var zero R
		return zero, err
	}
	return val, fnErr
}

// Name identifies the loop in readiness checks.
func (l *Loop) Name() string { return "event-loop" }

// HealthCheck reports whether the loop can be entered before ctx ends. A
// loop stuck in a long-running event fails readiness.
func (l *Loop) HealthCheck(ctx context.Context) error {
	return l.Do(ctx, func() {})
}
