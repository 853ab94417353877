// SPDX-License-Identifier: GPL-3.0-or-later

// Package torcore is an umbrella package documenting how the
// sibling packages in this module fit together. It declares no types
// of its own.
//
// # Components
//
//   - [timeoutrack]: tracks the earliest of a set of future deadlines
//     as comparisons are made against them, so a cooperative scheduler
//     can compute one wakeup time from many independent timeout
//     conditions without duplicating deadline bookkeeping.
//
//   - [hscrypto]: ed25519 key blinding for onion-service descriptor
//     signing keys, curve25519-to-ed25519 key cross-certification, and
//     the legacy RSA identity fingerprint format.
//
//   - [hspow]: assembly, nonce iteration, and effort verification for
//     the proof-of-work challenge a client solves before an
//     under-load onion service accepts its introduction request.
//
//   - [streammap]: the per-circuit-hop map from stream identifiers to
//     stream state; allocates stream IDs, tracks send/receive
//     windows, runs the open/end-sent/end-received state machine, and
//     fair-schedules outbound messages across a hop's streams.
//
//   - [hsrequest]: surfaces introduction and begin-stream requests
//     arriving from the layers below as a pull-based sequence the
//     service operator drains, accepting or rejecting each.
//
//   - [dirpath]: the one relay-selection policy in scope for this
//     module, used for non-anonymous directory downloads. Dials and
//     TLS-handshakes the picked relay using [netrt]'s injected
//     [netrt.Dialer] and [netrt.TLSEngine].
//
//   - [netrt]: the runtime-boundary interfaces and ambient
//     infrastructure (logging, span ids, error classification, clock
//     access) that [timeoutrack], [streammap], [hsrequest], and
//     [dirpath] are built to run over.
//
// Few of these packages import each other, and only where the
// dependency is load-bearing: [hsrequest] imports [hspow] to type its
// proof-of-work field and [netrt] to log request-intake events,
// [streammap] imports [netrt] to log stream lifecycle events through
// the same [netrt.SLogger] the transport layer uses, [timeoutrack]
// imports [netrt] for its [netrt.SleepProvider] clock and sleep
// contract, and [dirpath] imports [netrt] to turn a picked relay
// address into an open, TLS-wrapped connection. Each package
// otherwise stands alone.
package torcore
