package streammock

import "fmt"

// EventKind identifies which kind of scripted action an [Event] records.
type EventKind uint8

const (
	// The mock accepted a scripted write.
	WritePerformed EventKind = iota + 1

	// The mock delivered all the data of a scripted read.
	ReadPerformed

	// The mock returned a scripted write error.
	WriteErrorReturned

	// The mock returned a scripted read error.
	ReadErrorReturned
)

func (k EventKind) String() string {
	switch k {
	case WritePerformed:
		return "write"
	case ReadPerformed:
		return "read"
	case WriteErrorReturned:
		return "write-error"
	case ReadErrorReturned:
		return "read-error"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is emitted by a [*Mock] each time it consumes a scripted action.
// Events are observed through [*Handle.NextEvent] and [*Handle.PopEvent],
// in the order the component under test performed its operations.
type Event struct {
	Kind EventKind

	// Number of bytes read or written,
	// set for ReadPerformed and WritePerformed.
	Size int

	// Injected error kind,
	// set for ReadErrorReturned and WriteErrorReturned.
	Err ErrorKind
}

// ReadEvent returns the Event for a scripted read of n bytes.
func ReadEvent(n int) Event { return Event{Kind: ReadPerformed, Size: n} }

// WriteEvent returns the Event for a scripted write of n bytes.
func WriteEvent(n int) Event { return Event{Kind: WritePerformed, Size: n} }

// ReadErrorEvent returns the Event for a scripted read error of kind k.
func ReadErrorEvent(k ErrorKind) Event { return Event{Kind: ReadErrorReturned, Err: k} }

// WriteErrorEvent returns the Event for a scripted write error of kind k.
func WriteErrorEvent(k ErrorKind) Event { return Event{Kind: WriteErrorReturned, Err: k} }

func (e Event) String() string {
	switch e.Kind {
	case WritePerformed, ReadPerformed:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Size)
	default:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Err)
	}
}
