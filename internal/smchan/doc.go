// Package smchan contains the unbounded queue
// that connects a mock stream to its controlling handle.
//
// A [Queue] has exactly one producer and one consumer.
// Waiting consumers never poll:
// they take the [*Queue.Ready] channel before checking for a value,
// and the channel is closed by the next Send.
package smchan
