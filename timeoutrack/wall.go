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

// Wall tracks comparisons against a wall-clock "now" snapshot,
// recording the earliest absolute deadline that any comparison has
// touched.
//
// Unlike [Instant], Wall has no offset view: wall-clock deadlines are
// always absolute points in time, since the wall clock itself can step
// forward or backward (NTP correction, user changing the system
// clock), which would make a cached relative offset meaningless.
type Wall struct {
	now      time.Time
	earliest *time.Time
}

// NewWall returns a [Wall] snapshotting now on the wall clock. Call
// [netrt.SleepProvider.WallNow] to obtain now.
func NewWall(now time.Time) *Wall {
	return &Wall{now: now}
}

func (w *Wall) update(deadline time.Time) {
	if w.earliest == nil || deadline.Before(*w.earliest) {
		dd := deadline
		w.earliest = &dd
	}
}

// Before reports whether the tracker's snapshot is before deadline,
// recording deadline as a candidate earliest wakeup.
func (w *Wall) Before(deadline time.Time) bool {
	w.update(deadline)
	return w.now.Before(deadline)
}

// Update records deadline as a candidate earliest wakeup without
// returning an ordering.
func (w *Wall) Update(deadline time.Time) {
	w.update(deadline)
}

// Earliest consumes the tracker and returns the minimum absolute
// deadline recorded by any comparison, or false if none was performed.
func (w *Wall) Earliest() (time.Time, bool) {
	if w.earliest == nil {
		return time.Time{}, false
	}
	return *w.earliest, true
}

// WaitForEarliest consumes the tracker and suspends the caller until
// the recorded minimum elapses on sp's wall clock, or returns
// immediately if no comparison was ever performed.
func (w *Wall) WaitForEarliest(ctx context.Context, sp netrt.SleepProvider) error {
	d, ok := w.Earliest()
	if !ok {
		return nil
	}
	return sp.SleepUntilWall(ctx, d)
}
