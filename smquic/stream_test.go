package smquic_test

import (
	"testing"

	"github.com/gordian-engine/streammock/smquic"
	"github.com/quic-go/quic-go"
	"github.com/stretchr/testify/require"
)

func TestStreamErrorCode_Check(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		smquic.StreamErrorCode(1<<62 - 1).Check()
	})

	require.Panics(t, func() {
		smquic.StreamErrorCode(1 << 62).Check()
	})
}

func TestStreamErrorCode_errors(t *testing.T) {
	t.Parallel()

	local := smquic.StreamErrorCode(0x42).LocalError()
	require.Equal(t, quic.StreamErrorCode(0x42), local.ErrorCode)
	require.False(t, local.Remote)

	remote := smquic.StreamErrorCode(0x42).RemoteError()
	require.Equal(t, quic.StreamErrorCode(0x42), remote.ErrorCode)
	require.True(t, remote.Remote)
}
