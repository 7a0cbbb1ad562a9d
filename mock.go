package streammock

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/streammock/internal/smchan"
	"github.com/gordian-engine/streammock/smquic"
)

// Config is the configuration passed to [NewPair].
// The zero value is valid.
type Config struct {
	// Name identifies the mock in log output,
	// which helps when a test drives more than one mock.
	Name string
}

// Mock is the transport endpoint handed to the component under test.
// It consumes the script supplied through its paired [*Handle]:
// reads block until a scripted read is available,
// and writes must match a scripted write already in the queue.
//
// Mock satisfies [io.ReadWriteCloser] and [smquic.Stream].
//
// Operations panic with a [*ViolationError]
// when the component under test disagrees with the script.
// Scripted errors are returned as [*InjectedError].
type Mock struct {
	log *slog.Logger

	// Guards every field below, and serializes matching
	// between concurrent readers and writers.
	mu sync.Mutex

	actions *smchan.Queue[action]
	events  *smchan.Queue[Event]

	// Lookahead slot: an action that was dequeued
	// while the opposite direction was requested.
	stash *action

	// Closed and replaced whenever a waiting reader should look again
	// for a reason other than a new action:
	// the stash was filled or emptied, a deadline changed,
	// the read side was canceled, or the mock was released.
	wake chan struct{}

	// Script indices of every consumed action.
	consumed bitset.BitSet

	readDeadline, writeDeadline time.Time

	readCanceled, writeCanceled *smquic.StreamErrorCode

	released bool
}

var (
	_ io.ReadWriteCloser = (*Mock)(nil)
	_ smquic.Stream      = (*Mock)(nil)
)

// NewPair returns a new Mock and the Handle that scripts it.
// The two share nothing but the action and event queues.
//
// A nil log discards all output.
func NewPair(log *slog.Logger, cfg Config) (*Mock, *Handle) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Name != "" {
		log = log.With("mock", cfg.Name)
	}

	actions := smchan.New[action]()
	events := smchan.New[Event]()

	m := &Mock{
		log: log,

		actions: actions,
		events:  events,

		wake: make(chan struct{}),
	}

	h := &Handle{
		actions: actions,
		events:  events,
	}

	return m, h
}

// Flush is a no-op that always succeeds,
// as the mock does not buffer writes.
func (m *Mock) Flush() error {
	return nil
}

// Close is a no-op that always succeeds,
// mirroring a successful shutdown of the write side.
//
// Close does not release the mock; see [*Mock.Release].
func (m *Mock) Close() error {
	return nil
}

// SetReadDeadline sets the time after which a blocked Read
// returns [os.ErrDeadlineExceeded] without consuming an action.
// A zero t clears the deadline.
func (m *Mock) SetReadDeadline(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readDeadline = t
	m.wakeLocked()
	return nil
}

// SetWriteDeadline sets the time after which Write
// returns [os.ErrDeadlineExceeded] without consuming an action.
// Writes never wait, so only a deadline already in the past has an effect.
func (m *Mock) SetWriteDeadline(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeDeadline = t
	return nil
}

// SetDeadline sets both the read and write deadlines.
func (m *Mock) SetDeadline(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readDeadline = t
	m.writeDeadline = t
	m.wakeLocked()
	return nil
}

// CancelRead makes every subsequent Read, including a blocked one,
// fail with a local QUIC stream error carrying code.
// No scripted action is consumed by a canceled read.
func (m *Mock) CancelRead(code smquic.StreamErrorCode) {
	code.Check()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCanceled = &code
	m.wakeLocked()
}

// CancelWrite makes every subsequent Write
// fail with a local QUIC stream error carrying code.
// No scripted action is consumed by a canceled write.
func (m *Mock) CancelWrite(code smquic.StreamErrorCode) {
	code.Check()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCanceled = &code
}

// Release tears down the mock's ends of the action and event queues.
// Any read blocked on the mock returns an error wrapping [net.ErrClosed],
// and the Handle can no longer queue actions.
//
// If any scripted action was never consumed,
// Release returns a [*ViolationError] with reason [UnusedAction]
// describing every leftover action in script order.
// Calling Release again returns nil.
func (m *Mock) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return nil
	}
	m.released = true
	m.wakeLocked()

	var unused []action
	if m.stash != nil {
		unused = append(unused, *m.stash)
		m.stash = nil
	}
	unused = append(unused, m.actions.CloseRecv()...)

	m.events.CloseSend()

	if len(unused) == 0 {
		m.log.Info("Released mock", "consumed", m.consumed.Count())
		return nil
	}

	descs := make([]string, len(unused))
	for i, a := range unused {
		descs[i] = a.String()
	}

	m.log.Info(
		"Released mock with unused actions",
		"consumed", m.consumed.Count(),
		"unused", len(unused),
	)

	return newViolation(
		UnusedAction,
		"%d scripted action(s) never consumed (consumed %d): %s",
		len(unused), m.consumed.Count(), strings.Join(descs, ", "),
	)
}

// consumeLocked records a as consumed
// and emits its event to the handle.
func (m *Mock) consumeLocked(a action) {
	m.consumed.Set(a.seq)

	ev := a.event()
	if err := m.events.Send(ev); err != nil {
		panic(newViolation(
			EventsDropped,
			"handle stopped receiving events before action %s was consumed", a,
		))
	}

	m.log.Debug(
		"Consumed scripted action",
		"dir", a.dir,
		"seq", a.seq,
		"event", ev,
	)
}

func (m *Mock) wakeLocked() {
	close(m.wake)
	m.wake = make(chan struct{})
}

// releasedError is returned from operations on a released mock.
func releasedError(dir Direction) error {
	return fmt.Errorf("streammock: %s: %w: %w", dir, ErrMockReleased, net.ErrClosed)
}

// deadlineError is returned from operations whose deadline has passed.
func deadlineError(dir Direction) error {
	return fmt.Errorf("streammock: %s: %w", dir, os.ErrDeadlineExceeded)
}
