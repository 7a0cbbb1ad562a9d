// Package streammock provides a scripted stand-in for a byte-stream transport,
// for tests of code that reads from and writes to a connection or stream.
//
// [NewPair] returns a [*Mock], handed to the component under test,
// and a [*Handle], kept by the test.
// The test queues the reads the component should receive,
// the writes it is expected to make,
// and errors to inject into either direction.
// Each time the mock consumes a scripted action it emits an [Event],
// which the test observes through the handle.
//
// Reads block until a scripted read is available, like a real socket.
// Writes never wait: every write must already be scripted,
// and its bytes must match exactly.
// Within one direction, actions are consumed in the order they were queued;
// an action for the other direction does not hold up a later one
// for the direction being requested.
//
// Disagreement between the script and the component under test
// (an unscripted write, mismatched write bytes,
// a scripted read too large for the reader's buffer,
// or leftover actions at [*Mock.Release])
// is a [*ViolationError].
// The mock panics with it rather than returning it,
// so it can never be mistaken for an injected [*InjectedError].
//
// Tests usually construct the pair through
// [github.com/gordian-engine/streammock/streammocktest.New],
// which checks for unused actions during test cleanup.
package streammock
