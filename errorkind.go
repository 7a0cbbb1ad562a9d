package streammock

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"syscall"

	"github.com/gordian-engine/streammock/smquic"
	"github.com/quic-go/quic-go"
)

// ErrorKind is the reason carried by a scripted read or write error.
// The set mirrors the failures a real transport reports;
// [ErrorKind.Err] returns the Go error that transport would return,
// so that errors.Is and errors.As checks in the component under test
// behave as they would in production.
type ErrorKind uint8

const (
	ConnectionRefused ErrorKind = iota + 1
	ConnectionReset
	ConnectionAborted
	NotConnected
	AddrInUse
	AddrNotAvailable
	BrokenPipe
	AlreadyExists
	WouldBlock
	InvalidInput
	InvalidData
	TimedOut
	WriteZero
	Interrupted
	Unsupported
	UnexpectedEOF
	EOF
	OutOfMemory
	PermissionDenied
	NotFound
	Closed
	Other

	// StreamReset is a QUIC stream reset or stop-sending by the peer,
	// reported with error code 0.
	StreamReset

	// IdleTimeout is a QUIC connection that timed out due to inactivity.
	IdleTimeout

	maxErrorKind = IdleTimeout
)

var (
	// ErrInvalidData is the error for [InvalidData].
	ErrInvalidData = errors.New("invalid data")

	// ErrOther is the error for [Other].
	ErrOther = errors.New("other I/O error")
)

type errorKindInfo struct {
	name string
	err  func() error
}

var errorKinds = [...]errorKindInfo{
	ConnectionRefused: {"connection refused", func() error { return syscall.ECONNREFUSED }},
	ConnectionReset:   {"connection reset", func() error { return syscall.ECONNRESET }},
	ConnectionAborted: {"connection aborted", func() error { return syscall.ECONNABORTED }},
	NotConnected:      {"not connected", func() error { return syscall.ENOTCONN }},
	AddrInUse:         {"address in use", func() error { return syscall.EADDRINUSE }},
	AddrNotAvailable:  {"address not available", func() error { return syscall.EADDRNOTAVAIL }},
	BrokenPipe:        {"broken pipe", func() error { return syscall.EPIPE }},
	AlreadyExists:     {"already exists", func() error { return fs.ErrExist }},
	WouldBlock:        {"would block", func() error { return syscall.EAGAIN }},
	InvalidInput:      {"invalid input", func() error { return syscall.EINVAL }},
	InvalidData:       {"invalid data", func() error { return ErrInvalidData }},
	TimedOut:          {"timed out", func() error { return os.ErrDeadlineExceeded }},
	WriteZero:         {"write zero", func() error { return io.ErrShortWrite }},
	Interrupted:       {"interrupted", func() error { return syscall.EINTR }},
	Unsupported:       {"unsupported", func() error { return errors.ErrUnsupported }},
	UnexpectedEOF:     {"unexpected EOF", func() error { return io.ErrUnexpectedEOF }},
	EOF:               {"EOF", func() error { return io.EOF }},
	OutOfMemory:       {"out of memory", func() error { return syscall.ENOMEM }},
	PermissionDenied:  {"permission denied", func() error { return fs.ErrPermission }},
	NotFound:          {"not found", func() error { return fs.ErrNotExist }},
	Closed:            {"closed", func() error { return net.ErrClosed }},
	Other:             {"other", func() error { return ErrOther }},

	// quic-go errors are pointers, so each call returns a fresh value.
	StreamReset: {"stream reset", func() error { return smquic.StreamErrorCode(0).RemoteError() }},
	IdleTimeout: {"idle timeout", func() error { return &quic.IdleTimeoutError{} }},
}

// ErrorKinds returns every valid ErrorKind, in declaration order.
func ErrorKinds() []ErrorKind {
	out := make([]ErrorKind, 0, int(maxErrorKind))
	for k := ErrorKind(1); k <= maxErrorKind; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k ErrorKind) Valid() bool {
	return k >= 1 && k <= maxErrorKind
}

func (k ErrorKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
	return errorKinds[k].name
}

// Err returns the error a real transport would report for k.
//
// Err panics if k is not valid.
func (k ErrorKind) Err() error {
	if !k.Valid() {
		panic(fmt.Errorf("BUG: invalid error kind %d", uint8(k)))
	}
	return errorKinds[k].err()
}

// Timeout reports whether errors of kind k are timeouts,
// in the sense of net.Error.
func (k ErrorKind) Timeout() bool {
	return k == TimedOut || k == IdleTimeout
}
