package streammock

import (
	"fmt"

	"github.com/gordian-engine/streammock/internal/smchan"
)

type popResult uint8

const (
	// The returned action has the requested direction
	// and has been removed from the script.
	matched popResult = iota

	// Nothing of the requested direction is available yet.
	noMatch

	// The handle closed the script
	// and no action for the requested direction remains.
	exhausted
)

// popLocked returns the next action for dir, if one is available.
//
// Actions are only ever consumed in script order within one direction.
// An action of the opposite direction is parked in the stash,
// and the queue is then only peeked,
// so at most one action is ever held back.
// A stashed action together with another opposite-direction action
// at the front of the queue blocks dir until the other side catches up.
//
// The caller must hold m.mu, and must consume the matched action.
func (m *Mock) popLocked(dir Direction) (action, popResult) {
	if m.stash != nil && m.stash.dir == dir {
		a := *m.stash
		m.stash = nil

		// A reader held up behind the stashed action may now proceed.
		m.wakeLocked()
		return a, matched
	}

	if m.stash == nil {
		a, s := m.actions.TryRecv()
		switch s {
		case smchan.Empty:
			return action{}, noMatch
		case smchan.Closed:
			return action{}, exhausted
		case smchan.Available:
			// Handled below.
		default:
			panic(fmt.Errorf("BUG: unknown queue state %s", s))
		}

		if a.dir == dir {
			return a, matched
		}

		m.stash = &a
		m.wakeLocked()
	}

	// The stash now holds an action for the other direction.
	// Only take the front of the queue if it is ours.
	a, s := m.actions.Peek()
	if s == smchan.Closed {
		// Nothing for dir can ever arrive.
		return action{}, exhausted
	}
	if s != smchan.Available || a.dir != dir {
		return action{}, noMatch
	}

	if got, s := m.actions.TryRecv(); s != smchan.Available || got.seq != a.seq {
		panic(fmt.Errorf(
			"BUG: action queue changed between peek (%s) and receive (%s)", a, s,
		))
	}
	return a, matched
}

// describeNextLocked summarizes what the script expects next,
// for violation messages.
func (m *Mock) describeNextLocked() string {
	var next string
	if m.stash != nil {
		next = "stashed " + m.stash.String()
	}

	a, s := m.actions.Peek()
	var queued string
	switch s {
	case smchan.Available:
		queued = "queued " + a.String()
	case smchan.Closed:
		queued = "script closed"
	case smchan.Empty:
		queued = "nothing queued"
	}

	if next == "" {
		return queued
	}
	return next + "; " + queued
}
