// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-proto/src/circuit/streammap.rs (arti)
//

package streammap

// HalfStream polices messages from the peer that arrive after the
// local side has already sent its own end-of-stream message. It holds
// the send-window frozen at the moment of transition (the former Open
// entry's credits cannot be used after this point) and a fresh
// receive-window for validating the peer's remaining traffic.
type HalfStream struct {
	sendWindow    int
	receiveWindow int
	checker       CommandChecker
}

// NewHalfStream builds a [HalfStream] freezing sendWindow and
// constructing a receive-window of size receiveWindow, transferring
// ownership of checker away from the entry being terminated.
func NewHalfStream(sendWindow, receiveWindow int, checker CommandChecker) *HalfStream {
	return &HalfStream{
		sendWindow:    sendWindow,
		receiveWindow: receiveWindow,
		checker:       checker,
	}
}

// SendWindow returns the send-window credit count frozen at
// construction time.
func (h *HalfStream) SendWindow() int { return h.sendWindow }

// ReceiveWindow returns the remaining receive-window credit.
func (h *HalfStream) ReceiveWindow() int { return h.receiveWindow }

// DecrementReceiveWindow accounts for one more inbound message against
// the half-stream's receive-window, returning the new value. Callers
// that police incoming traffic call this once per inbound data
// message while in EndSent.
func (h *HalfStream) DecrementReceiveWindow() int {
	h.receiveWindow--
	return h.receiveWindow
}

// Checker returns the command-validity checker transferred from the
// stream's Open state.
func (h *HalfStream) Checker() CommandChecker { return h.checker }
