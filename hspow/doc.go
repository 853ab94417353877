// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hspow/src/v1/challenge.rs (arti)
//

// Package hspow implements the v1 client-puzzle challenge string used
// by onion service introduction (proposal 327): the packed byte layout
// solvers and verifiers hash, nonce iteration, and the effort test that
// decides whether a solution is acceptable.
//
// This package does not implement the Equi-X puzzle itself; a solution
// is treated as an opaque byte slice produced and verified by a
// separate solver/verifier, and [Challenge.CheckEffort] only checks
// that the solution clears the effort bar once it is supplied.
package hspow
