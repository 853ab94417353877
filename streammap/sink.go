// SPDX-License-Identifier: GPL-3.0-or-later

package streammap

import "context"

// ChanSink adapts a send-only channel to the [Sink] interface. Send
// blocks until the channel accepts the message or ctx is done, which
// is how backpressure from a full channel propagates to a stream's
// owner.
type ChanSink[M any] struct {
	ch chan<- M
}

var _ Sink[struct{}] = ChanSink[struct{}]{}

// NewChanSink wraps ch as a [Sink].
func NewChanSink[M any](ch chan<- M) ChanSink[M] {
	return ChanSink[M]{ch: ch}
}

// Send implements [Sink].
func (s ChanSink[M]) Send(ctx context.Context, msg M) error {
	select {
	case s.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
