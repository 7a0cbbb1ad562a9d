// Package smtest contains helpers shared by the streammock tests.
package smtest

import (
	"log/slog"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
)

// ScheduleTimeout is how long ReceiveSoon and SendSoon wait
// before failing the test.
// It is long enough that a loaded CI machine still passes,
// but short enough to fail fast on a deadlock.
const ScheduleTimeout = 2 * time.Second

// NewLogger returns a logger that writes through t.Log,
// so that output is associated with the test that produced it.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t)
}

// ReceiveSoon receives a value from ch,
// failing the test if no value arrives within [ScheduleTimeout].
func ReceiveSoon[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("no value received within %s", ScheduleTimeout)
	}

	panic("unreachable")
}

// SendSoon sends v on ch,
// failing the test if the send does not complete within [ScheduleTimeout].
func SendSoon[T any](t testing.TB, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case ch <- v:
	case <-timer.C:
		t.Fatalf("value not sent within %s", ScheduleTimeout)
	}
}

// IsSending asserts that ch is immediately readable,
// which includes being closed.
func IsSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
	default:
		t.Fatal("channel was not sending")
	}
}

// NotSending asserts that ch is not readable within a short window.
func NotSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel should not have been sending")
	case <-time.After(10 * time.Millisecond):
	}
}
