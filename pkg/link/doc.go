// Package link owns the serial channel to the accelerator.
//
// A Session wraps a Port and provides bounded blocking primitives:
// writes in either paced single-byte or block framing, and single-byte
// reads with a timeout where silence is a value, not an error.
//
// The channel is half-duplex and a Session must be owned by a single
// goroutine. The only exception is Close, which may be called from
// elsewhere to abort an in-flight operation.
package link
