package streammock

import (
	"bytes"
	"time"
)

// Write implements [io.Writer].
//
// The bytes in p must exactly equal the next scripted write,
// which must already be queued:
// a write with no scripted counterpart panics with an [UnscriptedWrite] violation,
// and a write with different bytes panics with a [WriteMismatch] violation.
// A scripted read at the front of the script is stashed
// so that the write can match the scripted write behind it.
//
// On a match, Write reports all of p as written.
// A scripted write error is returned as an [*InjectedError]
// with nothing written.
func (m *Mock) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return 0, releasedError(Write)
	}
	if m.writeCanceled != nil {
		return 0, m.writeCanceled.LocalError()
	}
	if !m.writeDeadline.IsZero() && !time.Now().Before(m.writeDeadline) {
		return 0, deadlineError(Write)
	}

	a, res := m.popLocked(Write)
	if res != matched {
		panic(newViolation(
			UnscriptedWrite,
			"write of %d bytes %q with no scripted write available (%s)",
			len(p), p, m.describeNextLocked(),
		))
	}

	if a.isErr {
		m.consumeLocked(a)
		return 0, newInjectedError(Write, a.kind)
	}

	if !bytes.Equal(a.data, p) {
		panic(newViolation(
			WriteMismatch,
			"action #%d: expected write %q, got %q", a.seq, a.data, p,
		))
	}

	m.consumeLocked(a)
	return len(p), nil
}
