// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hsservice/src/req.rs (arti)
//

package hsrequest

import (
	"io"
	"net/netip"

	"github.com/gotorproject/torcore/hspow"
)

// IntroPointID identifies the introduction point an INTRODUCE2 cell
// arrived from, among the service's currently established intro
// points.
type IntroPointID [32]byte

// ProofOfWorkKind names a supported proof-of-work scheme. Only the
// Equi-X v1 scheme in hspow is implemented; other values are reserved
// for future wire compatibility.
type ProofOfWorkKind int

const (
	ProofOfWorkEquiXV1 ProofOfWorkKind = iota
)

// ProofOfWork describes the proof of work an onion-service client
// attached to an INTRODUCE2 cell, if the service requires one: its
// scheme and effort level. The solution bytes are not carried here.
type ProofOfWork struct {
	Kind        ProofOfWorkKind
	EffortLevel hspow.Effort
}

// HandshakeState holds whatever partially-completed ntor handshake
// state the circuit layer needs to finish the rendezvous once the
// operator accepts a [RendezvousRequest]. The core never interprets
// this state; it only carries it between the circuit layer and
// whichever code completes the handshake.
type HandshakeState struct {
	NtorHandshake []byte
}

// RendezvousPoint is where and how the client asked the service to
// meet it.
type RendezvousPoint struct {
	// Location is the rendezvous point's address. Unlike the client's
	// eventual stream target (see StreamRequest.Target), a rendezvous
	// point is always a relay with a known address, so a concrete
	// address type is appropriate here.
	Location  netip.AddrPort
	NtorKey   [32]byte
	Handshake HandshakeState
}

// Decision is the operator's answer to a request surfaced through an
// [Intake].
type Decision int

const (
	Reject Decision = iota
	Accept
)

// resolution lets the operator report a [Decision] back to whatever
// constructed the request, without the request itself needing to know
// who that is. It is the Go analogue of handing the request a
// oneshot::Sender.
type resolution struct {
	ch chan<- Decision
}

func newResolution() (resolution, <-chan Decision) {
	ch := make(chan Decision, 1)
	return resolution{ch: ch}, ch
}

func (r resolution) decide(d Decision) {
	r.ch <- d
	close(r.ch)
}

// RendezvousRequest is a well-formed request to open a new rendezvous
// circuit, surfaced for the service operator to accept or reject. The
// operator learns of these through an Intake[*RendezvousRequest]'s
// Requests sequence.
type RendezvousRequest struct {
	FromIntroPoint IntroPointID
	ProofOfWork    *ProofOfWork // nil if the client provided none
	RendezvousPt   RendezvousPoint

	decision resolution
}

// NewRendezvousRequest builds a request along with the channel that
// will receive the operator's eventual decision.
func NewRendezvousRequest(fromIntro IntroPointID, pow *ProofOfWork, pt RendezvousPoint) (*RendezvousRequest, <-chan Decision) {
	res, ch := newResolution()
	return &RendezvousRequest{
		FromIntroPoint: fromIntro,
		ProofOfWork:    pow,
		RendezvousPt:   pt,
		decision:       res,
	}, ch
}

// Accept tells the circuit layer to proceed with the rendezvous.
func (r *RendezvousRequest) Accept() { r.decision.decide(Accept) }

// Reject tells the circuit layer to drop the rendezvous attempt.
func (r *RendezvousRequest) Reject() { r.decision.decide(Reject) }

// StreamRequest is a well-formed request to open a data stream on an
// already-rendezvoused circuit, surfaced for the operator to accept
// or reject.
//
// Target is a string, not a [netip.AddrPort]: a BEGIN cell's target
// may name a hostname the service resolves locally, and forcing it
// into an address type here would silently drop that case.
type StreamRequest struct {
	Stream io.ReadWriteCloser
	Target string

	decision resolution
}

// NewStreamRequest builds a request along with the channel that will
// receive the operator's eventual decision.
func NewStreamRequest(stream io.ReadWriteCloser, target string) (*StreamRequest, <-chan Decision) {
	res, ch := newResolution()
	return &StreamRequest{Stream: stream, Target: target, decision: res}, ch
}

// Accept tells the circuit layer the stream may proceed; the service
// is expected to begin relaying data to and from Stream.
func (r *StreamRequest) Accept() { r.decision.decide(Accept) }

// Reject tells the circuit layer to send an end-of-stream message
// instead of proceeding.
func (r *StreamRequest) Reject() { r.decision.decide(Reject) }
