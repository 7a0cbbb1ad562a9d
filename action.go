package streammock

import "fmt"

// Direction classifies both scripted actions and the operations
// the component under test performs on a [*Mock].
type Direction uint8

const (
	Read Direction = iota + 1
	Write
)

func (d Direction) String() string {
	switch d {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// action is a single scripted expectation.
// Exactly one of data or kind is meaningful, as selected by isErr.
type action struct {
	dir Direction

	data []byte

	kind  ErrorKind
	isErr bool

	// Index of the action within the whole script,
	// across both directions.
	seq uint
}

// event returns the Event that consuming a produces.
func (a action) event() Event {
	switch {
	case a.dir == Read && !a.isErr:
		return Event{Kind: ReadPerformed, Size: len(a.data)}
	case a.dir == Write && !a.isErr:
		return Event{Kind: WritePerformed, Size: len(a.data)}
	case a.dir == Read:
		return Event{Kind: ReadErrorReturned, Err: a.kind}
	case a.dir == Write:
		return Event{Kind: WriteErrorReturned, Err: a.kind}
	default:
		panic(fmt.Errorf("BUG: action #%d has invalid direction %s", a.seq, a.dir))
	}
}

func (a action) String() string {
	if a.isErr {
		return fmt.Sprintf("#%d %s error(%s)", a.seq, a.dir, a.kind)
	}
	return fmt.Sprintf("#%d %s %d bytes %q", a.seq, a.dir, len(a.data), a.data)
}
