package streammocktest

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/gordian-engine/streammock"
	"github.com/gordian-engine/streammock/internal/smtest"
)

// Fixture holds a mock and its handle for a single test.
//
// Create an instance with [New] or [NewWithConfig].
type Fixture struct {
	Mock   *streammock.Mock
	Handle *streammock.Handle

	Log *slog.Logger
}

// New returns a Fixture whose mock logs through t.
// See [NewWithConfig].
func New(t testing.TB) *Fixture {
	t.Helper()
	return NewWithConfig(t, streammock.Config{})
}

// NewWithConfig returns a Fixture built with the given config.
//
// During test cleanup the mock is released,
// and any unused scripted action is reported with t.Error,
// unless the test has already failed.
func NewWithConfig(t testing.TB, cfg streammock.Config) *Fixture {
	t.Helper()

	log := smtest.NewLogger(t)
	m, h := streammock.NewPair(log, cfg)

	t.Cleanup(func() {
		err := m.Release()
		if err == nil {
			return
		}

		if t.Failed() {
			// Leftover actions are expected after an earlier failure.
			t.Logf("Ignoring release error after test failure: %v", err)
			return
		}
		t.Error(err)
	})

	return &Fixture{
		Mock:   m,
		Handle: h,
		Log:    log,
	}
}

// RequireEvents receives len(want) events from the handle
// and fails the test if any differs from want, in order.
// Each event must arrive within [smtest.ScheduleTimeout].
func (f *Fixture) RequireEvents(t testing.TB, want ...streammock.Event) {
	t.Helper()

	for i, w := range want {
		ctx, cancel := context.WithTimeout(context.Background(), smtest.ScheduleTimeout)
		got, err := f.Handle.NextEvent(ctx)
		cancel()

		if err != nil {
			t.Fatalf("event %d: expected %s, got error: %v", i, w, err)
		}
		if got != w {
			t.Fatalf("event %d: expected %s, got %s", i, w, got)
		}
	}
}

// RequireNoEvent fails the test if an event is already available.
func (f *Fixture) RequireNoEvent(t testing.TB) {
	t.Helper()

	if ev, ok := f.Handle.PopEvent(); ok {
		t.Fatalf("expected no event, got %s", ev)
	}
}

// CatchViolation calls fn and returns the [*streammock.ViolationError]
// it panicked with, or nil if fn returned normally.
// Any other panic value is propagated.
func CatchViolation(fn func()) (v *streammock.ViolationError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if err, ok := r.(error); ok && errors.As(err, &v) {
			return
		}
		panic(r)
	}()

	fn()
	return nil
}

// GoCatchViolation runs fn in a new goroutine,
// as a component under test would run,
// and sends the result of [CatchViolation] on the returned channel
// once fn finishes.
func GoCatchViolation(fn func()) <-chan *streammock.ViolationError {
	ch := make(chan *streammock.ViolationError, 1)
	go func() {
		ch <- CatchViolation(fn)
	}()
	return ch
}
