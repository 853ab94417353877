// SPDX-License-Identifier: GPL-3.0-or-later

// Package netrt defines the concurrency-runtime contract that the torcore
// core subsystems (streammap, hspow, hscrypto, timeoutrack, hsrequest)
// require from their host, named as interface boundaries the way spec.md
// §6 describes them, plus the small set of ambient infrastructure
// (logging, span ids, error classification, sleep/clock access) those
// subsystems genuinely call.
//
// # Runtime contract
//
//   - [Dialer]: opens a TCP connection (the "TCP connect/listen" ability
//     spec.md §6 names).
//   - [TLSEngine] / [TLSConn]: completes a TLS handshake over an existing
//     connection (the "TLS-connector construction" ability spec.md §6
//     names). TLS transport internals are explicitly out of scope
//     (spec.md §1), so this package declares the boundary and supplies no
//     concrete engine; [Config.TLSEngine] is nil until a caller injects
//     one.
//   - [SleepProvider]: produces monotonic/wall "now" values and sleeps
//     until an absolute instant on either clock, consumed directly by
//     [timeoutrack].
//
// [dirpath.DialRelay] is this module's one concrete consumer of [Dialer]
// and [TLSEngine]: it is the non-anonymous directory download spec.md §1
// scopes in as an in-scope relay-selection policy, and it supplies its
// own dial/handshake logging rather than going through a shared
// transport-pipeline abstraction, since nothing else in this module needs
// one.
//
// # Ambient infrastructure
//
//   - [SLogger] / [DefaultSLogger]: the structured-logging interface
//     reused by [streammap] (stream lifecycle events) and [hsrequest]
//     (request-intake events).
//   - [NewSpanID]: a UUIDv7 span identifier, used by [streammap.New] to
//     tag a stream map's lifecycle log lines.
//   - [ErrClassifier] / [DefaultErrClassifier]: turns a raw error into a
//     short label suitable for log correlation; backed by
//     internal/errclass's platform errno tables.
//   - [Config] / [NewConfig]: bundles the above with sensible defaults for
//     [dirpath.DialRelay] to build on.
//   - [RecoverToError]: recovers a panic crossing this package's or
//     [streammap]'s public entry points and returns it as an error,
//     for an FFI layer outside this module's scope to call (spec.md §7).
//
// # Design boundaries
//
// This package intentionally provides only the runtime-boundary
// interfaces the core subsystems need plus the ambient infrastructure
// they actually call. It does not implement a TCP/TLS composition
// pipeline, connection observability wrapper, or cancellation-watcher:
// those are transport-internals concerns spec.md §1 scopes out, and
// nothing in this module needs more than a direct dial-then-handshake
// call (see [dirpath.DialRelay]).
package netrt
