// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-proto/src/circuit/streammap.rs (arti)
//

package streammap

import "context"

// StreamID is a 16-bit stream identifier, unique within one circuit
// hop. Zero is reserved for circuit-level signalling and is never
// issued by [StreamMap.AddEnt].
type StreamID uint16

// State names the three states a stream entry can be in.
type State int

const (
	// StateOpen is the live state: both directions may still carry
	// data.
	StateOpen State = iota
	// StateEndReceived means the peer's end-of-stream message has
	// been observed, but the local owner handle has not yet been
	// released.
	StateEndReceived
	// StateEndSent means the local side has sent (or decided not to
	// send) an end-of-stream message and is waiting for the peer's.
	StateEndSent
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateEndReceived:
		return "end-received"
	case StateEndSent:
		return "end-sent"
	default:
		return "unknown"
	}
}

// Sink accepts outbound messages for one stream. Implementations are
// expected to be capacity-bounded; Send blocking is how backpressure
// reaches the stream's owner.
type Sink[M any] interface {
	Send(ctx context.Context, msg M) error
}

// Source supplies outbound messages for one stream's scheduler entry.
// It supports peeking at whether a message is ready, and at the
// message itself, without consuming it, which [StreamMap.PollReadyStreams]
// needs to yield a borrowed message reference without committing to
// delivery.
type Source[M any] interface {
	// Ready reports whether a message can be taken immediately
	// without blocking.
	Ready() bool
	// Closed reports whether the source has been closed and will
	// never produce another message. Closed can be true only once
	// Ready is false and every previously available message has been
	// taken.
	Closed() bool
	// Peek returns the next message without removing it, and true,
	// if one is ready. It must only be called when Ready reports
	// true, and must return the same message that a subsequent Take
	// would remove.
	Peek() (M, bool)
	// Take removes and returns the next message. It must only be
	// called when Ready reports true.
	Take() (M, bool)
}

// CommandChecker is an opaque, caller-supplied capability used to
// police the validity of commands arriving for a stream. The stream
// map only stores and transfers it; it never inspects or calls it.
type CommandChecker any

// openEntry is the live state of an Open stream.
type openEntry[M any] struct {
	sink       Sink[M]
	source     Source[M]
	sendWindow int
	dropped    uint16
	checker    CommandChecker
}

// endSentEntry is the state of a stream after the local side has sent
// (or withheld) its own end-of-stream message.
type endSentEntry struct {
	half              *HalfStream
	explicitlyDropped bool
}

// entry is the tagged union backing one stream map slot. Only methods
// on [StreamMap] may change which state an entry is in; [EntryView]
// exposes the fields of whichever state is current without allowing a
// transition.
type entry[M any] struct {
	state   State
	open    *openEntry[M]
	endSent *endSentEntry
}

func newOpenEntry[M any](sink Sink[M], source Source[M], sendWindow int, checker CommandChecker) *entry[M] {
	return &entry[M]{
		state: StateOpen,
		open: &openEntry[M]{
			sink:       sink,
			source:     source,
			sendWindow: sendWindow,
			checker:    checker,
		},
	}
}

// EntryView is a read/mutate window onto one stream entry's current
// state, returned by [StreamMap.GetMut]. It exposes the inner fields
// of an Open or EndSent entry but cannot be used to transition the
// entry to a different state: only the owning [StreamMap]'s methods
// do that.
type EntryView[M any] struct {
	e *entry[M]
}

// State reports which state the viewed entry is currently in.
func (v EntryView[M]) State() State {
	return v.e.state
}

// Open returns a view onto the entry's Open-only fields, and true, if
// the entry is currently Open.
func (v EntryView[M]) Open() (OpenView[M], bool) {
	if v.e.state != StateOpen {
		return OpenView[M]{}, false
	}
	return OpenView[M]{o: v.e.open}, true
}

// EndSent returns a view onto the entry's EndSent-only fields, and
// true, if the entry is currently EndSent.
func (v EntryView[M]) EndSent() (EndSentView, bool) {
	if v.e.state != StateEndSent {
		return EndSentView{}, false
	}
	return EndSentView{e: v.e.endSent}, true
}

// OpenView exposes the mutable fields of an Open stream entry.
type OpenView[M any] struct {
	o *openEntry[M]
}

// SendWindow returns the stream's current send-window credit count.
func (v OpenView[M]) SendWindow() int { return v.o.sendWindow }

// SetSendWindow overwrites the stream's send-window credit count.
func (v OpenView[M]) SetSendWindow(n int) { v.o.sendWindow = n }

// Dropped returns the number of inbound messages dropped for flow
// control reasons while this stream has been open.
func (v OpenView[M]) Dropped() uint16 { return v.o.dropped }

// IncrementDropped records one more dropped inbound message.
func (v OpenView[M]) IncrementDropped() { v.o.dropped++ }

// Checker returns the stream's command-validity checker capability.
func (v OpenView[M]) Checker() CommandChecker { return v.o.checker }

// EndSentView exposes the fields of a stream entry that has already
// sent its own end-of-stream message.
type EndSentView struct {
	e *endSentEntry
}

// Half returns the half-stream validator governing late messages from
// the peer.
func (v EndSentView) Half() *HalfStream { return v.e.half }

// ExplicitlyDropped reports whether the stream's local owner handle has
// been dropped, that is, whether a terminate with
// [ReasonStreamTargetClosed] has been recorded. It is false while the
// stream has only been ended with [ReasonExplicitEnd].
func (v EndSentView) ExplicitlyDropped() bool { return v.e.explicitlyDropped }
