// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hsservice/src/req.rs (arti)
//

package hsrequest

import (
	"context"
	"iter"

	"github.com/gotorproject/torcore/netrt"
)

// Intake is a lazy, pull-based sequence of well-formed requests for
// the service operator to consume. Whoever constructs requests (the
// circuit reactor, in the production wiring) pushes them in with
// Submit; the operator drains them with Requests, deciding
// Accept/Reject for each as it goes.
//
// Intake has no opinion on what T is; it is instantiated once for
// *RendezvousRequest and once for *StreamRequest.
type Intake[T any] struct {
	ch        chan T
	log       netrt.SLogger
	eventName string
}

// NewIntake builds an Intake buffering up to capacity unconsumed
// requests before Submit starts blocking. eventName is logged at Info
// level on every successful Submit. A nil logger means
// [netrt.DefaultSLogger].
func NewIntake[T any](capacity int, eventName string, logger netrt.SLogger) *Intake[T] {
	if logger == nil {
		logger = netrt.DefaultSLogger()
	}
	return &Intake[T]{ch: make(chan T, capacity), log: logger, eventName: eventName}
}

// NewRendezvousIntake builds an [Intake] for [*RendezvousRequest]
// values, logging a rendezvousRequestReceived event on every Submit.
func NewRendezvousIntake(capacity int, logger netrt.SLogger) *Intake[*RendezvousRequest] {
	return NewIntake[*RendezvousRequest](capacity, "rendezvousRequestReceived", logger)
}

// NewStreamIntake builds an [Intake] for [*StreamRequest] values,
// logging a streamRequestReceived event on every Submit.
func NewStreamIntake(capacity int, logger netrt.SLogger) *Intake[*StreamRequest] {
	return NewIntake[*StreamRequest](capacity, "streamRequestReceived", logger)
}

// Submit enqueues req for the operator to see. It blocks if the
// intake's buffer is full, which is how backpressure reaches whatever
// layer is constructing requests, and returns ctx.Err() if ctx is
// done first.
func (in *Intake[T]) Submit(ctx context.Context, req T) error {
	select {
	case in.ch <- req:
		in.log.Info(in.eventName)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no further requests will be submitted. Requests
// already buffered remain available through Requests.
func (in *Intake[T]) Close() {
	close(in.ch)
}

// Requests returns a sequence over every request submitted so far and
// in the future, until Close is called and the buffer drains. The
// caller may stop ranging at any point; nothing is lost by doing so.
func (in *Intake[T]) Requests() iter.Seq[T] {
	return func(yield func(T) bool) {
		for req := range in.ch {
			if !yield(req) {
				return
			}
		}
	}
}
