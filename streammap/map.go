// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-proto/src/circuit/streammap.rs (arti)
//

package streammap

import (
	"iter"
	"math/rand/v2"
	"sort"

	"github.com/gotorproject/torcore/netrt"
	"github.com/gotorproject/torcore/streammap/internal/countedmap"
)

// TerminateReason distinguishes why a stream is being terminated
// locally, which affects whether an end-of-stream wire message must
// be sent and how a second terminate call on the same stream is
// interpreted.
type TerminateReason int

const (
	// ReasonStreamTargetClosed means the local owner handle for this
	// stream was dropped.
	ReasonStreamTargetClosed TerminateReason = iota
	// ReasonExplicitEnd means the caller closed the stream
	// explicitly.
	ReasonExplicitEnd
)

// ShouldSendEnd reports whether [StreamMap.Terminate] requires the
// caller to emit an end-of-stream wire message.
type ShouldSendEnd int

const (
	// DontSend means no end-of-stream message should be sent.
	DontSend ShouldSendEnd = iota
	// SendEnd means an end-of-stream message must be sent.
	SendEnd
)

// schedEntry pairs a stream's outbound source with its current
// priority in the fair-scheduling order.
type schedEntry[M any] struct {
	priority uint64
	source   Source[M]
}

// StreamMap is the per-hop mapping from stream identifiers to stream
// state. It is not safe for concurrent use; see the package doc.
type StreamMap[M any] struct {
	config       Config
	entries      *countedmap.Map[StreamID, *entry[M]]
	scheduler    map[StreamID]*schedEntry[M]
	nextStreamID StreamID
	nextPriority uint64
	log          netrt.SLogger
	spanID       string
}

func isOpen[M any](e *entry[M]) bool { return e.state == StateOpen }

// New builds an empty [StreamMap] with a randomly chosen initial
// next-stream-id, as a defense against id-guessing by a cooperating
// peer across circuit lifetimes.
func New[M any](config Config) *StreamMap[M] {
	return &StreamMap[M]{
		config:       config,
		entries:      countedmap.New[StreamID, *entry[M]](isOpen[M]),
		scheduler:    make(map[StreamID]*schedEntry[M]),
		nextStreamID: StreamID(1 + rand.N(uint32(0xFFFE))),
		log:          config.logger(),
		spanID:       netrt.NewSpanID(),
	}
}

// wrappingNextStreamID returns the next candidate stream id after id,
// wrapping from 0xFFFF back to 1 (0 is reserved for circuit-level
// signalling and is never issued).
func wrappingNextStreamID(id StreamID) StreamID {
	if id == 0xFFFF {
		return 1
	}
	return id + 1
}

// AddEnt allocates a fresh stream id, probing successive identifiers
// up to [Config.MaxStreamIDProbes] times (default
// [DefaultMaxStreamIDProbes]), and inserts an Open entry with the
// given sink, source, initial send-window, and command checker. It
// fails with [IdRangeFullError] if every probed identifier is occupied.
func (m *StreamMap[M]) AddEnt(sink Sink[M], source Source[M], sendWindow int, checker CommandChecker) (StreamID, error) {
	id := m.nextStreamID
	for i := 0; i < m.config.maxStreamIDProbes(); i++ {
		if !m.entries.Has(id) {
			m.insertOpen(id, sink, source, sendWindow, checker)
			m.nextStreamID = wrappingNextStreamID(id)
			return id, nil
		}
		id = wrappingNextStreamID(id)
	}
	return 0, &IdRangeFullError{}
}

// AddEntWithID inserts an Open entry at the caller-supplied id, as
// used on the hidden-service side where the peer picks the
// identifier. It fails with [IdUnavailableError] if id is already
// occupied.
func (m *StreamMap[M]) AddEntWithID(id StreamID, sink Sink[M], source Source[M], sendWindow int, checker CommandChecker) error {
	if m.entries.Has(id) {
		return &IdUnavailableError{ID: id}
	}
	m.insertOpen(id, sink, source, sendWindow, checker)
	return nil
}

func (m *StreamMap[M]) insertOpen(id StreamID, sink Sink[M], source Source[M], sendWindow int, checker CommandChecker) {
	m.entries.Insert(id, newOpenEntry(sink, source, sendWindow, checker))
	m.scheduler[id] = &schedEntry[M]{priority: m.takeNextPriority(), source: source}
	m.log.Info("streamOpened", "spanID", m.spanID, "streamID", id, "sendWindow", sendWindow)
}

func (m *StreamMap[M]) takeNextPriority() uint64 {
	p := m.nextPriority
	m.nextPriority++
	return p
}

// GetMut returns a view onto the entry for id, and true, if one
// exists. The view exposes inner mutation but cannot change which
// state the entry is in.
func (m *StreamMap[M]) GetMut(id StreamID) (EntryView[M], bool) {
	e, ok := m.entries.Get(id)
	if !ok {
		return EntryView[M]{}, false
	}
	return EntryView[M]{e: e}, true
}

// NOpenStreams returns the number of entries currently Open, in O(1).
func (m *StreamMap[M]) NOpenStreams() int {
	return m.entries.Count()
}

// EndingMsgReceived records that an end-of-stream message arrived for
// id. An Open entry transitions to EndReceived. An EndSent entry is
// removed (its peer's end has now arrived too). Any other case is a
// protocol violation by the peer.
func (m *StreamMap[M]) EndingMsgReceived(id StreamID) error {
	e, ok := m.entries.Get(id)
	if !ok {
		return &CircuitProtocolViolationError{Message: "received end cell on nonexistent stream"}
	}
	switch e.state {
	case StateOpen:
		m.entries.Mutate(id, func(e *entry[M]) {
			e.state = StateEndReceived
			e.open = nil
		})
		delete(m.scheduler, id)
		m.log.Info("streamEndReceived", "spanID", m.spanID, "streamID", id)
		return nil
	case StateEndReceived:
		return &CircuitProtocolViolationError{Message: "received two end cells on the same stream"}
	case StateEndSent:
		m.entries.Remove(id)
		delete(m.scheduler, id)
		m.log.Info("streamTerminated", "spanID", m.spanID, "streamID", id)
		return nil
	default:
		return &InternalInvariantError{Message: "stream entry in unrecognized state"}
	}
}

// Terminate ends the local side's interest in id for the given
// reason, returning whether the caller must emit an end-of-stream
// wire message.
func (m *StreamMap[M]) Terminate(id StreamID, reason TerminateReason) (ShouldSendEnd, error) {
	e, ok := m.entries.Get(id)
	if !ok {
		return DontSend, &InternalInvariantError{Message: "terminate called on nonexistent stream"}
	}

	switch e.state {
	case StateOpen:
		open := e.open
		receiveWindow := m.config.receiveWindowInit() - int(open.dropped)
		half := NewHalfStream(open.sendWindow, receiveWindow, open.checker)
		m.entries.Mutate(id, func(e *entry[M]) {
			e.state = StateEndSent
			e.open = nil
			e.endSent = &endSentEntry{
				half:              half,
				explicitlyDropped: reason == ReasonStreamTargetClosed,
			}
		})
		delete(m.scheduler, id)
		m.log.Info("streamEndSent", "spanID", m.spanID, "streamID", id)
		return SendEnd, nil

	case StateEndReceived:
		m.entries.Remove(id)
		delete(m.scheduler, id)
		m.log.Info("streamTerminated", "spanID", m.spanID, "streamID", id)
		return DontSend, nil

	case StateEndSent:
		if reason == ReasonExplicitEnd {
			return DontSend, &ApiMisuseError{Message: "explicit end issued on a stream that already sent one"}
		}
		if e.endSent.explicitlyDropped {
			return DontSend, &ApiMisuseError{Message: "stream target closed twice"}
		}
		m.entries.Mutate(id, func(e *entry[M]) {
			e.endSent.explicitlyDropped = true
		})
		return DontSend, nil

	default:
		return DontSend, &InternalInvariantError{Message: "stream entry in unrecognized state"}
	}
}

// ReadyStream describes one stream visited by [StreamMap.PollReadyStreams]:
// either it has a pending outbound message, borrowed from the source
// via [Source.Peek] without consuming it, or its source has been
// closed, in which case Message is the zero value and HasMessage is
// false. Open is a view onto the same Open entry the caller would get
// back from [StreamMap.GetMut].
type ReadyStream[M any] struct {
	ID         StreamID
	Message    M
	HasMessage bool
	Closed     bool
	Open       OpenView[M]
}

// PollReadyStreams iterates, in ascending priority order, over every
// Open stream whose outbound source either has a message ready or has
// been closed. The sequence may be abandoned early by the caller at
// any point.
func (m *StreamMap[M]) PollReadyStreams() iter.Seq[ReadyStream[M]] {
	type candidate struct {
		id       StreamID
		priority uint64
	}
	ordered := make([]candidate, 0, len(m.scheduler))
	for id, se := range m.scheduler {
		ordered = append(ordered, candidate{id: id, priority: se.priority})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].priority < ordered[j].priority })

	return func(yield func(ReadyStream[M]) bool) {
		for _, c := range ordered {
			se, ok := m.scheduler[c.id]
			if !ok {
				continue
			}
			e, ok := m.entries.Get(c.id)
			if !ok || e.open == nil {
				continue
			}
			open := OpenView[M]{o: e.open}
			switch {
			case se.source.Ready():
				msg, _ := se.source.Peek()
				if !yield(ReadyStream[M]{ID: c.id, Message: msg, HasMessage: true, Open: open}) {
					return
				}
			case se.source.Closed():
				if !yield(ReadyStream[M]{ID: c.id, Closed: true, Open: open}) {
					return
				}
			}
		}
	}
}

// TakeReadyMsg removes and returns the next pending outbound message
// for id, if any, and reprioritizes the stream to the back of the
// fair-scheduling order. This is the step that enforces round-robin
// fairness: the stream just emitted from will not emit again until
// every other stream with a pending message has had a turn.
func (m *StreamMap[M]) TakeReadyMsg(id StreamID) (M, bool) {
	se, ok := m.scheduler[id]
	if !ok || !se.source.Ready() {
		var zero M
		return zero, false
	}
	msg, ok := se.source.Take()
	if !ok {
		var zero M
		return zero, false
	}
	se.priority = m.takeNextPriority()
	return msg, true
}
