// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-llcrypto/src/pk/keymanip.rs, tor-llcrypto/src/pk/rsa.rs (arti)
//

// Package hscrypto implements the key-manipulation primitives that
// onion-service v3 needs beyond plain ed25519: curve25519-to-ed25519
// cross-certification (used to prove ownership of a relay's ntor key
// with its identity key) and ed25519 key blinding (used to derive the
// publicly-known descriptor-signing key from a service's long-term
// identity key, per rend-spec-v3 appendix A).
//
// Both operations are not standard Ed25519 usage and must not be used
// outside the rend-spec-v3 context without careful re-analysis: the
// clamping applied to the blinding factor means distinct factors can
// collide on the same output for a given key, and the curve25519
// conversion formula has no independent security proof of its own.
//
// The personalization strings baked into [ConvertCurve25519PrivateToEd25519]
// and [BlindKeypair] are fixed by the protocol; changing them breaks
// interoperability with any other onion-service v3 implementation.
//
// [hscrypto.RSAIdentity] additionally implements the legacy relay
// identity format (a SHA-1 digest of a DER-encoded RSA public key),
// used only for backward compatibility with first-generation ("v2")
// directory documents.
package hscrypto
