// SPDX-License-Identifier: GPL-3.0-or-later

package streammap

import "fmt"

// IdRangeFullError indicates that [StreamMap.AddEnt] could not find a
// vacant stream identifier among the [Config.MaxStreamIDProbes]
// candidates it probed (by default, the entire 16-bit space).
type IdRangeFullError struct{}

func (*IdRangeFullError) Error() string {
	return "streammap: no stream identifier available after exhausting the id space"
}

// IdUnavailableError indicates that [StreamMap.AddEntWithID] was
// asked to use an identifier that is already occupied.
type IdUnavailableError struct {
	ID StreamID
}

func (e *IdUnavailableError) Error() string {
	return fmt.Sprintf("streammap: stream id %d is already in use", e.ID)
}

// CircuitProtocolViolationError indicates that the peer violated the
// stream-layer protocol: an end-of-stream message for a nonexistent
// stream, or two end-of-stream messages for the same stream. The
// circuit carrying this stream map should be torn down; other
// circuits are unaffected.
type CircuitProtocolViolationError struct {
	Message string
}

func (e *CircuitProtocolViolationError) Error() string {
	return "streammap: circuit protocol violation: " + e.Message
}

// ApiMisuseError indicates that the caller, not the peer, violated
// the stream map's contract: closing an already-closed stream, or
// issuing an explicit end on a stream that already has one sent.
type ApiMisuseError struct {
	Message string
}

func (e *ApiMisuseError) Error() string {
	return "streammap: api misuse: " + e.Message
}

// InternalInvariantError indicates that an invariant the stream map
// is supposed to maintain internally was found violated. It should be
// treated as a bug report, not a routine failure.
type InternalInvariantError struct {
	Message string
}

func (e *InternalInvariantError) Error() string {
	return "streammap: internal invariant violated: " + e.Message
}

// PanicError wraps a recovered panic value as an [error], returned by
// [RecoverToError].
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("streammap: recovered panic: %v", e.Value)
}

// RecoverToError invokes fn and, if it panics, recovers the panic and
// returns it as a [*PanicError] instead of letting it unwind further.
//
// This is for an FFI layer outside torcore's scope to call at the
// boundary where a panic would otherwise cross into foreign code and
// leave undefined behavior behind it (spec.md §7: "Panics anywhere
// inside the core's public entry points ... are caught and converted
// into an abort of the entire process"). The stream map never calls
// RecoverToError on itself.
func RecoverToError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	fn()
	return nil
}
