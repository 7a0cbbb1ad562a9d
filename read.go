package streammock

import (
	"context"
	"errors"
	"time"
)

// Read implements [io.Reader].
// It blocks until a scripted read or read error is available;
// see [*Mock.ReadContext].
func (m *Mock) Read(p []byte) (int, error) {
	return m.ReadContext(context.Background(), p)
}

// ReadContext waits for the next scripted read action
// and delivers it into p.
//
// Scripted data is copied into p in full and its length returned;
// a scripted read that does not fit in p
// panics with a [ReadOverflow] violation, leaving p untouched.
// A scripted read error is returned as an [*InjectedError].
// Scripted writes queued ahead of the next read
// do not cause an error; the read simply waits for them to be consumed.
//
// Without consuming an action, ReadContext returns
// the cause of ctx when it is canceled,
// [os.ErrDeadlineExceeded] once the read deadline passes,
// a QUIC stream error after [*Mock.CancelRead],
// and an error wrapping [net.ErrClosed] after [*Mock.Release].
//
// If the handle closed the script and no read remains,
// ReadContext panics with a [ScriptExhausted] violation.
func (m *Mock) ReadContext(ctx context.Context, p []byte) (int, error) {
	waited := false
	for {
		n, w, err := m.attemptRead(p)
		if w == nil {
			if waited && errors.Is(err, ErrMockReleased) {
				m.log.Warn("Blocked read ended by mock release")
			}
			return n, err
		}

		if err := w.wait(ctx); err != nil {
			return 0, err
		}
		waited = true
	}
}

// readWait holds everything a blocked read waits on.
// All channels are captured under the same lock
// as the failed match, so no wake-up is missed.
type readWait struct {
	actionReady <-chan struct{}
	wake        <-chan struct{}
	deadline    time.Time
}

func (w *readWait) wait(ctx context.Context) error {
	var timeout <-chan time.Time
	if !w.deadline.IsZero() {
		t := time.NewTimer(time.Until(w.deadline))
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-w.actionReady:
	case <-w.wake:
	case <-timeout:
		// The next attempt observes the passed deadline.
	}
	return nil
}

// attemptRead makes one non-blocking attempt to satisfy a read.
// It returns a non-nil readWait if the caller must wait and try again.
func (m *Mock) attemptRead(p []byte) (int, *readWait, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return 0, nil, releasedError(Read)
	}
	if m.readCanceled != nil {
		return 0, nil, m.readCanceled.LocalError()
	}
	if !m.readDeadline.IsZero() && !time.Now().Before(m.readDeadline) {
		return 0, nil, deadlineError(Read)
	}

	// Capture before popping, so a send after the pop still wakes us.
	w := &readWait{
		actionReady: m.actions.Ready(),
		wake:        m.wake,
		deadline:    m.readDeadline,
	}

	a, res := m.popLocked(Read)
	switch res {
	case noMatch:
		return 0, w, nil
	case exhausted:
		panic(newViolation(
			ScriptExhausted,
			"read into %d-byte buffer after the script was closed (%s)",
			len(p), m.describeNextLocked(),
		))
	}

	if a.isErr {
		m.consumeLocked(a)
		return 0, nil, newInjectedError(Read, a.kind)
	}

	if len(p) < len(a.data) {
		panic(newViolation(
			ReadOverflow,
			"expecting a read of %d bytes but only space for %d bytes (action %s)",
			len(a.data), len(p), a,
		))
	}

	m.consumeLocked(a)
	return copy(p, a.data), nil, nil
}
