// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hsservice/src/timeout_track.rs (arti)
//

package timeoutrack

import (
	"context"
	"time"

	"github.com/gotorproject/torcore/netrt"
)

// Instant tracks comparisons against a monotonic "now" snapshot,
// recording the earliest deadline (as a [time.Duration] relative to
// that snapshot) that any comparison has touched.
//
// Instant has single-threaded, interior-mutable semantics: comparisons
// like [Instant.Before] take a pointer receiver but are meant to be
// called repeatedly against the same value as natural place-of-use
// inequality checks, each one updating the recorded earliest as a side
// effect. Instant is not safe for concurrent use; the control loops it
// is built for (circuit reactors and onion-service request processing)
// are single-threaded per circuit.
type Instant struct {
	now      time.Time
	earliest *time.Duration
}

// NewInstant returns an [Instant] snapshotting now on the monotonic
// clock. Call [netrt.SleepProvider.MonotonicNow] to obtain now.
func NewInstant(now time.Time) *Instant {
	return &Instant{now: now}
}

// update records deadline as a candidate earliest wakeup, clamped to be
// non-negative relative to the tracker's snapshot.
func (t *Instant) update(deadline time.Time) {
	d := deadline.Sub(t.now)
	if d < 0 {
		d = 0
	}
	if t.earliest == nil || d < *t.earliest {
		dd := d
		t.earliest = &dd
	}
}

// Before reports whether the tracker's snapshot is before deadline.
// As a side effect, it records deadline as a candidate earliest wakeup.
func (t *Instant) Before(deadline time.Time) bool {
	t.update(deadline)
	return t.now.Before(deadline)
}

// Update records deadline as a candidate earliest wakeup without
// returning an ordering. Use this when the comparison result itself is
// not needed, only the side effect.
func (t *Instant) Update(deadline time.Time) {
	t.update(deadline)
}

// Earliest consumes the tracker and returns the minimum duration
// recorded by any comparison performed against it, or false if no
// comparison was ever made.
func (t *Instant) Earliest() (time.Duration, bool) {
	if t.earliest == nil {
		return 0, false
	}
	return *t.earliest, true
}

// CheckedSub returns a borrowing offset view of t that compares against
// "now - offset" instead of "now", while still feeding comparisons into
// t's own earliest cell. Use this to express deadlines relative to a
// point in the past without re-anchoring a new tracker.
func (t *Instant) CheckedSub(offset time.Duration) *InstantOffset {
	return &InstantOffset{base: t, offset: offset}
}

// WaitForEarliest consumes the tracker and suspends the caller until
// the recorded minimum elapses on sp's monotonic clock. If no
// comparison was ever performed, it returns immediately.
func (t *Instant) WaitForEarliest(ctx context.Context, sp netrt.SleepProvider) error {
	d, ok := t.Earliest()
	if !ok {
		return nil
	}
	return sp.SleepUntilMonotonic(ctx, t.now.Add(d))
}

// InstantOffset is a borrowing view over an [Instant] that shifts every
// comparison by a fixed offset, letting code compare against "now -
// offset" while still updating the base tracker's earliest cell.
//
// There is no equivalent offset view for [Wall]: wall-clock deadlines
// must always be absolute to survive clock warps, so there is nothing
// meaningful to shift them by.
type InstantOffset struct {
	base   *Instant
	offset time.Duration
}

// Before reports whether "now - offset" is before deadline, recording
// the shifted deadline into the shared earliest cell.
func (o *InstantOffset) Before(deadline time.Time) bool {
	return o.base.Before(deadline.Add(o.offset))
}

// Update records deadline (shifted by offset) as a candidate earliest
// wakeup, without returning an ordering.
func (o *InstantOffset) Update(deadline time.Time) {
	o.base.Update(deadline.Add(o.offset))
}
