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

// Combined composes one [Instant] and one [Wall] tracker constructed at
// the same moment, so a reactor pass can mix monotonic and wall-clock
// deadlines and wait on whichever fires first.
type Combined struct {
	Mono *Instant
	Wall *Wall
}

// NewCombined returns a [Combined] tracker snapshotting mono on the
// monotonic clock and wall on the wall clock.
func NewCombined(mono, wall time.Time) *Combined {
	return &Combined{Mono: NewInstant(mono), Wall: NewWall(wall)}
}

// WaitForEarliest consumes the tracker and suspends the caller until
// whichever of the two clocks' recorded minimum elapses first (a
// biased select: whichever fires first wins). It returns immediately
// if neither clock ever had a comparison performed against it.
func (c *Combined) WaitForEarliest(ctx context.Context, sp netrt.SleepProvider) error {
	monoDur, monoOK := c.Mono.Earliest()
	wallDeadline, wallOK := c.Wall.Earliest()
	if !monoOK && !wallOK {
		return nil
	}

	race, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan error, 2)
	pending := 0
	if monoOK {
		pending++
		go func() {
			results <- sp.SleepUntilMonotonic(race, c.Mono.now.Add(monoDur))
		}()
	}
	if wallOK {
		pending++
		go func() {
			results <- sp.SleepUntilWall(race, wallDeadline)
		}()
	}

	err := <-results
	cancel()
	// Drain the loser so its goroutine doesn't leak past this call.
	for i := 1; i < pending; i++ {
		<-results
	}
	return err
}
