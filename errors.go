package streammock

import (
	"errors"
	"fmt"
)

// ErrMockReleased is returned from the Handle's Queue methods
// once [*Mock.Release] has been called,
// and is wrapped by errors from operations on a released Mock.
var ErrMockReleased = errors.New("mock released")

// ErrHandleClosed is returned from the Handle's Queue methods
// after [*Handle.CloseScript] or [*Handle.Close].
var ErrHandleClosed = errors.New("handle closed")

// InjectedError is the error a [*Mock] returns
// when it consumes a scripted read or write error.
//
// It unwraps to the error for its Kind,
// so errors.Is(err, syscall.ECONNRESET) holds
// for an injected [ConnectionReset].
type InjectedError struct {
	// "read" or "write".
	Op string

	Kind ErrorKind
}

func newInjectedError(dir Direction, k ErrorKind) *InjectedError {
	return &InjectedError{
		Op:   dir.String(),
		Kind: k,
	}
}

func (e *InjectedError) Error() string {
	return fmt.Sprintf("streammock: injected %s error: %v", e.Op, e.Kind.Err())
}

func (e *InjectedError) Unwrap() error {
	return e.Kind.Err()
}

// Timeout satisfies the optional method of net.Error.
func (e *InjectedError) Timeout() bool {
	return e.Kind.Timeout()
}

// Violation identifies how a test script disagreed
// with what the component under test actually did.
type Violation uint8

const (
	// The component wrote while no write was scripted.
	UnscriptedWrite Violation = iota + 1

	// The component wrote bytes different from the scripted write.
	WriteMismatch

	// A scripted read had more bytes than the component's buffer could hold.
	ReadOverflow

	// The handle closed its script while the mock still needed actions.
	ScriptExhausted

	// Scripted actions were never consumed.
	UnusedAction

	// The handle stopped receiving events while the mock was still emitting them.
	EventsDropped
)

func (v Violation) String() string {
	switch v {
	case UnscriptedWrite:
		return "unscripted write"
	case WriteMismatch:
		return "write mismatch"
	case ReadOverflow:
		return "read overflow"
	case ScriptExhausted:
		return "script exhausted"
	case UnusedAction:
		return "unused action"
	case EventsDropped:
		return "events dropped"
	default:
		return fmt.Sprintf("Violation(%d)", uint8(v))
	}
}

// ViolationError describes a test script that is inconsistent
// with the behavior of the component under test.
//
// Operations on a [*Mock] panic with a *ViolationError
// instead of returning it,
// because the test itself is wrong, not the code under test.
// [*Mock.Release] returns one for unused actions.
type ViolationError struct {
	Reason Violation
	Msg    string
}

func newViolation(reason Violation, format string, args ...any) *ViolationError {
	return &ViolationError{
		Reason: reason,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("streammock: %s: %s", e.Reason, e.Msg)
}
