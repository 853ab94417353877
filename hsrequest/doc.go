// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hsservice/src/req.rs (arti)
//

// Package hsrequest models the two kinds of request an onion service
// receives from the layers below it, and exposes them to the service
// operator as a lazy, pull-based sequence: a [RendezvousRequest] for
// each well-formed INTRODUCE2 message, and (after a rendezvous
// request is accepted and the handshake completes) a [StreamRequest]
// for each well-formed BEGIN message.
//
// This package's job stops at surfacing well-formed requests and
// holding the resumption state their acceptance path needs; malformed
// wire messages never become requests here; they are dropped by the
// layer that parses them.
package hsrequest
