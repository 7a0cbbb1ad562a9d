package streammock_test

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/gordian-engine/streammock"
	"github.com/quic-go/quic-go"
	"github.com/stretchr/testify/require"
)

func TestErrorKind_allKindsHaveErrors(t *testing.T) {
	t.Parallel()

	kinds := streammock.ErrorKinds()
	require.Len(t, kinds, int(streammock.IdleTimeout))

	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		require.True(t, k.Valid(), "kind %d", k)
		require.Error(t, k.Err(), "kind %s", k)

		name := k.String()
		require.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
}

func TestErrorKind_invalid(t *testing.T) {
	t.Parallel()

	require.False(t, streammock.ErrorKind(0).Valid())
	require.False(t, streammock.ErrorKind(200).Valid())
	require.Equal(t, "ErrorKind(200)", streammock.ErrorKind(200).String())

	require.Panics(t, func() {
		_ = streammock.ErrorKind(0).Err()
	})
}

func TestErrorKind_hostErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		kind streammock.ErrorKind
		want error
	}{
		{kind: streammock.ConnectionReset, want: syscall.ECONNRESET},
		{kind: streammock.ConnectionRefused, want: syscall.ECONNREFUSED},
		{kind: streammock.BrokenPipe, want: syscall.EPIPE},
		{kind: streammock.WouldBlock, want: syscall.EAGAIN},
		{kind: streammock.TimedOut, want: os.ErrDeadlineExceeded},
		{kind: streammock.EOF, want: io.EOF},
		{kind: streammock.UnexpectedEOF, want: io.ErrUnexpectedEOF},
		{kind: streammock.Closed, want: net.ErrClosed},
		{kind: streammock.Other, want: streammock.ErrOther},
		{kind: streammock.InvalidData, want: streammock.ErrInvalidData},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, tc.kind.Err(), tc.want)

			injected := &streammock.InjectedError{Op: "read", Kind: tc.kind}
			require.ErrorIs(t, injected, tc.want)
		})
	}
}

func TestErrorKind_quicErrors(t *testing.T) {
	t.Parallel()

	var streamErr *quic.StreamError
	require.ErrorAs(t, streammock.StreamReset.Err(), &streamErr)
	require.True(t, streamErr.Remote)

	var idleErr *quic.IdleTimeoutError
	require.ErrorAs(t, streammock.IdleTimeout.Err(), &idleErr)

	var netErr net.Error
	require.ErrorAs(t, streammock.IdleTimeout.Err(), &netErr)
	require.True(t, netErr.Timeout())

	require.True(t, streammock.IdleTimeout.Timeout())
	require.True(t, streammock.TimedOut.Timeout())
	require.False(t, streammock.ConnectionReset.Timeout())
}

func TestViolationError_isNotInjected(t *testing.T) {
	t.Parallel()

	v := &streammock.ViolationError{Reason: streammock.WriteMismatch, Msg: "x"}
	require.Equal(t, "streammock: write mismatch: x", v.Error())

	var injected *streammock.InjectedError
	require.False(t, errors.As(v, &injected))
}
