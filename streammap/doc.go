// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-proto/src/circuit/streammap.rs (arti)
//

// Package streammap holds the per-hop mapping from stream identifiers
// to stream state inside one circuit: it allocates stream IDs, runs
// the open -> end-sent/end-received -> closed state machine, and
// fair-schedules outbound messages across streams in strict
// round-robin order.
//
// A [StreamMap] is not safe for concurrent use. It is designed to be
// owned by a single circuit reactor goroutine, matching the
// single-threaded cooperative scheduling model its upstream protocol
// assumes: all mutation of one circuit's stream map happens on the
// task that owns that circuit.
package streammap
