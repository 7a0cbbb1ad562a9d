package streammock

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordian-engine/streammock/internal/smchan"
)

// Handle is the test-facing side of a [*Mock].
// The test scripts the mock through the Queue methods
// and observes consumed actions through [*Handle.NextEvent]
// and [*Handle.PopEvent].
//
// None of the Handle's methods block, except NextEvent.
type Handle struct {
	actions *smchan.Queue[action]
	events  *smchan.Queue[Event]

	// Guards assignment of script indices,
	// so that concurrent Queue calls still number actions in send order.
	mu      sync.Mutex
	nextSeq uint
}

// QueueRead scripts a read that delivers a copy of data.
// The component under test must read into a buffer
// with room for all of data at once.
func (h *Handle) QueueRead(data []byte) error {
	return h.queue(action{dir: Read, data: bytes.Clone(data)})
}

// QueueWrite scripts a write whose bytes must equal data.
func (h *Handle) QueueWrite(data []byte) error {
	return h.queue(action{dir: Write, data: bytes.Clone(data)})
}

// QueueReadError scripts a read that fails with an [*InjectedError] of kind.
func (h *Handle) QueueReadError(kind ErrorKind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid error kind %d", uint8(kind))
	}
	return h.queue(action{dir: Read, kind: kind, isErr: true})
}

// QueueWriteError scripts a write that fails with an [*InjectedError] of kind.
func (h *Handle) QueueWriteError(kind ErrorKind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid error kind %d", uint8(kind))
	}
	return h.queue(action{dir: Write, kind: kind, isErr: true})
}

func (h *Handle) queue(a action) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	a.seq = h.nextSeq
	if err := h.actions.Send(a); err != nil {
		switch {
		case errors.Is(err, smchan.ErrReceiverClosed):
			return ErrMockReleased
		case errors.Is(err, smchan.ErrSenderClosed):
			return ErrHandleClosed
		default:
			return fmt.Errorf("failed to queue %s action: %w", a.dir, err)
		}
	}

	h.nextSeq++
	return nil
}

// NextEvent blocks until the mock emits an event, returning it.
//
// If ctx is canceled first, NextEvent returns the context's cause.
// Once the mock has been released and every event received,
// NextEvent returns [ErrMockReleased].
func (h *Handle) NextEvent(ctx context.Context) (Event, error) {
	ev, err := h.events.Recv(ctx)
	if errors.Is(err, smchan.ErrSenderClosed) {
		return Event{}, ErrMockReleased
	}
	return ev, err
}

// PopEvent returns the next event if one has already been emitted.
func (h *Handle) PopEvent() (Event, bool) {
	ev, s := h.events.TryRecv()
	return ev, s == smchan.Available
}

// CloseScript declares that no further actions will be queued.
// A read that finds no remaining scripted read
// then panics with a [ScriptExhausted] violation
// instead of waiting.
func (h *Handle) CloseScript() {
	h.actions.CloseSend()
}

// Close closes the script and stops receiving events.
// Any later event emitted by the mock
// panics with an [EventsDropped] violation.
func (h *Handle) Close() {
	h.actions.CloseSend()
	_ = h.events.CloseRecv()
}
