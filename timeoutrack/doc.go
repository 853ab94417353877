// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hsservice/src/timeout_track.rs (arti)
//

// Package timeoutrack tracks prospective timeouts as a control loop
// inspects state, and lets the loop compute a single wakeup from many
// independent deadline comparisons.
//
// A reactor pass typically touches several independent pieces of state,
// each with its own candidate deadline ("this guard expires at T1",
// "this circuit's build timeout fires at T2", "this retry backoff ends
// at T3"). Rather than threading an accumulator variable through every
// call site, code writes natural-looking comparisons against a tracker
// ([Instant.Before], [Wall.Before]), and the tracker itself records the
// minimum of every deadline it was compared against. After the pass,
// [Instant.WaitForEarliest] (or [Wall.WaitForEarliest], or
// [Combined.WaitForEarliest]) suspends until that minimum elapses.
//
// [Instant] tracks deadlines on the monotonic clock, storing the
// earliest as a [time.Duration] relative to its construction time, so
// that [Instant.CheckedSub] can hand out an offset view ("now - D")
// sharing the same underlying cell. [Wall] tracks deadlines on the wall
// clock and has no such offset view: wall-clock deadlines are always
// absolute, because the wall clock can jump (NTP step, user changing
// the system clock) in a way the monotonic clock cannot. [Combined]
// composes one of each and resolves whichever fires first.
package timeoutrack
