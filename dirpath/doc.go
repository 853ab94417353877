// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-circmgr/path/dirpath.rs (arti)
//

// Package dirpath implements the one relay-selection policy this
// module takes a position on: picking a single relay to use for a
// non-anonymous, unencrypted-inside-TLS directory download, and
// [DialRelay], which opens that connection using [netrt.Config]'s
// injected [netrt.Dialer] and [netrt.TLSEngine]. Every other
// path-selection policy (guards, exit policy, circuit-length rules)
// is out of scope and lives in surrounding modules this package never
// references.
package dirpath
