// Package smquic describes the QUIC stream surface
// that [github.com/gordian-engine/streammock.Mock] satisfies,
// so that code written against quic-go streams can be driven by a script.
package smquic

import (
	"fmt"
	"time"

	"github.com/quic-go/quic-go"
)

// StreamErrorCode is used for
// [ReceiveStream.CancelRead] and [SendStream.CancelWrite],
// to inform the peer of why the stream is canceled.
type StreamErrorCode uint64

// Check panics if c does not fit in the 62 bits
// that QUIC allows for an application error code.
func (c StreamErrorCode) Check() {
	if (c >> 62) > 0 {
		panic(fmt.Errorf(
			"BUG: stream error code must fit in 62 bits (got 0x%x)", uint64(c),
		))
	}
}

// LocalError returns the error quic-go reports on a stream
// that was canceled locally with code c.
func (c StreamErrorCode) LocalError() *quic.StreamError {
	c.Check()
	return &quic.StreamError{
		ErrorCode: quic.StreamErrorCode(c),
	}
}

// RemoteError returns the error quic-go reports on a stream
// that the peer reset or stopped with code c.
func (c StreamErrorCode) RemoteError() *quic.StreamError {
	c.Check()
	return &quic.StreamError{
		ErrorCode: quic.StreamErrorCode(c),
		Remote:    true,
	}
}

// ReceiveStream is the read-only version of a [Stream].
type ReceiveStream interface {
	Read([]byte) (int, error)
	CancelRead(StreamErrorCode)

	SetReadDeadline(time.Time) error
}

// SendStream is the write-only version of a [Stream].
type SendStream interface {
	Write([]byte) (int, error)
	CancelWrite(StreamErrorCode)

	Close() error

	SetWriteDeadline(t time.Time) error
}

// Stream is a readable and writable QUIC stream.
type Stream interface {
	SendStream
	ReceiveStream
}
