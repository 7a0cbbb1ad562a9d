package smchan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eapache/queue"
)

// ErrReceiverClosed is returned from [*Queue.Send]
// after [*Queue.CloseRecv] has been called.
var ErrReceiverClosed = errors.New("queue receiver closed")

// ErrSenderClosed is returned from [*Queue.Send] after [*Queue.CloseSend],
// and from [*Queue.Recv] once every value sent before CloseSend has been received.
var ErrSenderClosed = errors.New("queue sender closed")

// State is the outcome of a non-blocking receive or peek.
type State uint8

const (
	// Available indicates a value was returned.
	Available State = iota

	// Empty indicates nothing is buffered yet,
	// but the sender may still send more values.
	Empty

	// Closed indicates nothing is buffered
	// and the sender has closed its end.
	Closed
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Empty:
		return "empty"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Queue is an unbounded, ordered queue with one sending end
// and one receiving end.
// Send never blocks.
//
// Receivers that need to wait for a value call [*Queue.Ready]
// before checking the queue,
// so that a Send racing with the check still wakes them.
type Queue[T any] struct {
	mu sync.Mutex

	buf *queue.Queue

	// Closed and replaced on every Send and on CloseSend.
	ready chan struct{}

	sendClosed, recvClosed bool
}

// New returns an empty, open Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		buf:   queue.New(),
		ready: make(chan struct{}),
	}
}

// Send appends v to the queue and wakes any waiting receiver.
//
// Send returns [ErrSenderClosed] if called after [*Queue.CloseSend].
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sendClosed {
		return ErrSenderClosed
	}

	if q.recvClosed {
		return ErrReceiverClosed
	}

	q.buf.Add(v)
	q.notifyLocked()
	return nil
}

// CloseSend closes the sending end.
// Values already sent remain available to the receiver.
// It is safe to call CloseSend more than once.
func (q *Queue[T]) CloseSend() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sendClosed {
		return
	}
	q.sendClosed = true
	q.notifyLocked()
}

// CloseRecv closes the receiving end
// and returns every value that was never received, in order.
// Subsequent calls to Send return [ErrReceiverClosed].
func (q *Queue[T]) CloseRecv() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.recvClosed = true

	n := q.buf.Length()
	if n == 0 {
		return nil
	}

	out := make([]T, 0, n)
	for q.buf.Length() > 0 {
		out = append(out, q.buf.Remove().(T))
	}
	return out
}

// Ready returns a channel that is closed
// at the next Send or CloseSend after Ready was called.
func (q *Queue[T]) Ready() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ready
}

// Peek returns the oldest value without removing it.
func (q *Queue[T]) Peek() (T, State) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() > 0 {
		return q.buf.Peek().(T), Available
	}

	var zero T
	if q.sendClosed {
		return zero, Closed
	}
	return zero, Empty
}

// TryRecv removes and returns the oldest value, without blocking.
func (q *Queue[T]) TryRecv() (T, State) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.buf.Length() > 0 {
		return q.buf.Remove().(T), Available
	}

	var zero T
	if q.sendClosed {
		return zero, Closed
	}
	return zero, Empty
}

// Recv blocks until a value is available,
// the sending end is closed (returning [ErrSenderClosed]),
// or ctx is canceled (returning the context's cause).
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	for {
		ready := q.Ready()

		v, s := q.TryRecv()
		switch s {
		case Available:
			return v, nil
		case Closed:
			return v, ErrSenderClosed
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, context.Cause(ctx)
		case <-ready:
			// Check again.
		}
	}
}

// Len reports the number of buffered values.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Length()
}

func (q *Queue[T]) notifyLocked() {
	close(q.ready)
	q.ready = make(chan struct{})
}
