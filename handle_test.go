package streammock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gordian-engine/streammock"
	"github.com/gordian-engine/streammock/internal/smtest"
	"github.com/gordian-engine/streammock/streammocktest"
	"github.com/stretchr/testify/require"
)

func TestHandle_queueError_rejectsInvalidKind(t *testing.T) {
	t.Parallel()

	f := streammocktest.New(t)

	require.Error(t, f.Handle.QueueReadError(0))
	require.Error(t, f.Handle.QueueWriteError(streammock.ErrorKind(250)))
}

func TestHandle_popEvent(t *testing.T) {
	t.Parallel()

	f := streammocktest.New(t)

	_, ok := f.Handle.PopEvent()
	require.False(t, ok)

	require.NoError(t, f.Handle.QueueRead([]byte("a")))
	_, err := f.Mock.Read(make([]byte, 1))
	require.NoError(t, err)

	ev, ok := f.Handle.PopEvent()
	require.True(t, ok)
	require.Equal(t, streammock.ReadEvent(1), ev)

	_, ok = f.Handle.PopEvent()
	require.False(t, ok)
}

func TestHandle_nextEvent_waitsForConsumption(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := streammocktest.New(t)
	require.NoError(t, f.Handle.QueueWrite([]byte("abc")))

	evCh := make(chan streammock.Event, 1)
	go func() {
		ev, err := f.Handle.NextEvent(ctx)
		if err == nil {
			evCh <- ev
		}
	}()

	smtest.NotSending(t, evCh)

	_, err := f.Mock.Write([]byte("abc"))
	require.NoError(t, err)

	require.Equal(t, streammock.WriteEvent(3), smtest.ReceiveSoon(t, evCh))
}

func TestHandle_nextEvent_contextCanceled(t *testing.T) {
	t.Parallel()

	f := streammocktest.New(t)

	cause := errors.New("no more waiting")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(cause)

	_, err := f.Handle.NextEvent(ctx)
	require.ErrorIs(t, err, cause)
}

func TestHandle_closeScript_rejectsFurtherActions(t *testing.T) {
	t.Parallel()

	f := streammocktest.New(t)
	f.Handle.CloseScript()

	require.ErrorIs(t, f.Handle.QueueRead([]byte("a")), streammock.ErrHandleClosed)
	require.ErrorIs(t, f.Handle.QueueWrite([]byte("a")), streammock.ErrHandleClosed)
	require.ErrorIs(t, f.Handle.QueueReadError(streammock.EOF), streammock.ErrHandleClosed)
	require.ErrorIs(t, f.Handle.QueueWriteError(streammock.EOF), streammock.ErrHandleClosed)
}

func TestHandle_rejectedActionsDoNotUseIndices(t *testing.T) {
	t.Parallel()

	m, h := streammock.NewPair(smtest.NewLogger(t), streammock.Config{})

	require.Error(t, h.QueueReadError(0))
	require.NoError(t, h.QueueRead([]byte("a")))

	err := m.Release()
	var v *streammock.ViolationError
	require.ErrorAs(t, err, &v)
	require.Contains(t, v.Msg, "#0 read")
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "write(5)", streammock.WriteEvent(5).String())
	require.Equal(t, "read(0)", streammock.ReadEvent(0).String())
	require.Equal(t,
		"read-error(connection reset)",
		streammock.ReadErrorEvent(streammock.ConnectionReset).String(),
	)
	require.Equal(t,
		"write-error(broken pipe)",
		streammock.WriteErrorEvent(streammock.BrokenPipe).String(),
	)
}
