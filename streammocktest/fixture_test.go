package streammocktest_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gordian-engine/streammock"
	"github.com/gordian-engine/streammock/internal/smtest"
	"github.com/gordian-engine/streammock/streammocktest"
	"github.com/stretchr/testify/require"
)

func TestCatchViolation(t *testing.T) {
	t.Parallel()

	require.Nil(t, streammocktest.CatchViolation(func() {}))

	want := &streammock.ViolationError{Reason: streammock.ReadOverflow, Msg: "too big"}
	got := streammocktest.CatchViolation(func() { panic(want) })
	require.Same(t, want, got)

	// Other panics are not swallowed.
	require.PanicsWithError(t, "boom", func() {
		_ = streammocktest.CatchViolation(func() { panic(errors.New("boom")) })
	})
}

func TestGoCatchViolation(t *testing.T) {
	t.Parallel()

	f := streammocktest.NewWithConfig(t, streammock.Config{Name: "go"})

	ch := streammocktest.GoCatchViolation(func() {
		_, _ = f.Mock.Write([]byte("unexpected"))
	})

	v := smtest.ReceiveSoon(t, ch)
	require.NotNil(t, v)
	require.Equal(t, streammock.UnscriptedWrite, v.Reason)
}

func TestFixture_RequireEvents(t *testing.T) {
	t.Parallel()

	f := streammocktest.New(t)
	require.NoError(t, f.Handle.QueueRead([]byte("hi")))
	require.NoError(t, f.Handle.QueueWriteError(streammock.WouldBlock))

	_, err := f.Mock.Read(make([]byte, 2))
	require.NoError(t, err)
	_, err = f.Mock.Write([]byte("x"))
	require.Error(t, err)

	f.RequireEvents(t,
		streammock.ReadEvent(2),
		streammock.WriteErrorEvent(streammock.WouldBlock),
	)
	f.RequireNoEvent(t)
}

// cleanupTB captures cleanup registration and failures,
// delegating everything else to the real test.
type cleanupTB struct {
	testing.TB

	cleanups []func()
	errs     []string
	failed   bool
}

func (c *cleanupTB) Cleanup(fn func()) { c.cleanups = append(c.cleanups, fn) }
func (c *cleanupTB) Failed() bool      { return c.failed }
func (c *cleanupTB) Error(args ...any) { c.errs = append(c.errs, fmt.Sprint(args...)) }

func (c *cleanupTB) runCleanups() {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		c.cleanups[i]()
	}
}

func TestNew_cleanupReportsUnusedAction(t *testing.T) {
	t.Parallel()

	ctb := &cleanupTB{TB: t}
	f := streammocktest.New(ctb)
	require.NoError(t, f.Handle.QueueRead([]byte("x")))

	ctb.runCleanups()

	require.Len(t, ctb.errs, 1)
	require.Contains(t, ctb.errs[0], "unused action")
	require.Contains(t, ctb.errs[0], `#0 read 1 bytes "x"`)
}

func TestNew_cleanupQuietAfterFailure(t *testing.T) {
	t.Parallel()

	ctb := &cleanupTB{TB: t, failed: true}
	f := streammocktest.New(ctb)
	require.NoError(t, f.Handle.QueueWrite([]byte("x")))

	ctb.runCleanups()

	require.Empty(t, ctb.errs)

	// The mock was still released.
	require.ErrorIs(t, f.Handle.QueueWrite([]byte("y")), streammock.ErrMockReleased)
}
