// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-llcrypto/src/pk/keymanip.rs (arti)
//

package hscrypto

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// blindHashPrefixPersonalization is mixed into the blinded hash prefix
// derivation. Fixed by rend-spec-v3 appendix A.2; changing it breaks
// interoperability.
const blindHashPrefixPersonalization = "Derive temporary signing key hash input"

// curveToEdPersonalization is mixed into the curve25519-to-ed25519
// private key conversion. Fixed by the protocol (trailing NUL
// included); changing it breaks interoperability.
const curveToEdPersonalization = "Derive high part of ed25519 key from curve25519 key\x00"

// ExpandedSecretKey is the "hazmat" expanded form of an ed25519 secret
// key: a scalar used directly for signing, plus the hash prefix mixed
// into the per-signature nonce. This is the representation key
// blinding operates on, since blinding multiplies the scalar directly
// rather than deriving it fresh from a 32-byte seed.
type ExpandedSecretKey struct {
	// Scalar is the private scalar used for signing and for deriving
	// the public key (Public = Scalar*B).
	Scalar *edwards25519.Scalar

	// HashPrefix is mixed into the deterministic per-signature nonce,
	// as in the ed25519 "expanded secret key" construction described
	// in RFC 8032 section 5.1.5.
	HashPrefix [32]byte
}

// ExpandedKeypair pairs an [ExpandedSecretKey] with its corresponding
// compressed ed25519 public key.
type ExpandedKeypair struct {
	Secret ExpandedSecretKey
	Public [32]byte
}

// publicFromScalar computes the compressed ed25519 public key
// corresponding to a private scalar: Public = Scalar*B.
func publicFromScalar(s *edwards25519.Scalar) [32]byte {
	p := new(edwards25519.Point).ScalarBaseMult(s)
	var out [32]byte
	copy(out[:], p.Bytes())
	return out
}

// ExpandSeed performs the standard RFC 8032 section 5.1.5 secret key
// expansion: SHA-512(seed) split into a clamped scalar and a nonce hash
// prefix. This is the ordinary way to obtain an [ExpandedKeypair] from
// a 32-byte ed25519 seed, as opposed to [ConvertCurve25519PrivateToEd25519]
// which treats the input bytes as an already-clamped curve25519 scalar.
func ExpandSeed(seed [32]byte) *ExpandedKeypair {
	h := sha512.Sum512(seed[:])

	scalar, err := new(edwards25519.Scalar).SetBytesWithClamping(h[:32])
	if err != nil {
		// SetBytesWithClamping only rejects inputs that are not 32
		// bytes long; h[:32] always is.
		panic("hscrypto: impossible clamping failure: " + err.Error())
	}

	var hashPrefix [32]byte
	copy(hashPrefix[:], h[32:])

	return &ExpandedKeypair{
		Secret: ExpandedSecretKey{Scalar: scalar, HashPrefix: hashPrefix},
		Public: publicFromScalar(scalar),
	}
}

// ConvertCurve25519PublicToEd25519 interprets pub as a Montgomery
// u-coordinate and recovers the corresponding Edwards point with the
// given sign bit (the low bit of signBit is used), for use in ntor key
// cross-certification.
//
// This formula is not standardized; do not use it for anything besides
// cross-certification.
//
// Returns ok=false iff pub has no Edwards preimage (which happens only
// for the single Montgomery point with u = -1) or the resulting
// candidate point fails to decompress.
func ConvertCurve25519PublicToEd25519(pub [32]byte, signBit byte) (ed [32]byte, ok bool) {
	u, err := new(field.Element).SetBytes(pub[:])
	if err != nil {
		return ed, false
	}

	one := new(field.Element).One()
	uPlus1 := new(field.Element).Add(u, one)
	if uPlus1.Equal(new(field.Element).Zero()) == 1 {
		// u == -1: the birational map to Edwards coordinates is
		// undefined here (division by zero); there is no preimage.
		return ed, false
	}
	uMinus1 := new(field.Element).Subtract(u, one)
	uPlus1Inv := new(field.Element).Invert(uPlus1)
	y := new(field.Element).Multiply(uMinus1, uPlus1Inv)

	yBytes := y.Bytes()
	yBytes[31] &= 0x7f
	yBytes[31] |= (signBit & 1) << 7

	point, err := new(edwards25519.Point).SetBytes(yBytes)
	if err != nil {
		return ed, false
	}
	copy(ed[:], point.Bytes())
	return ed, true
}

// ConvertCurve25519PrivateToEd25519 converts a curve25519 private key
// (already clamped, as produced by any standard X25519 static-secret
// constructor) to an ed25519 expanded keypair usable for ntor key
// cross-certification, along with the sign bit needed to recover the
// same public key via [ConvertCurve25519PublicToEd25519].
//
// This formula is not standardized; do not use it for anything besides
// cross-certification, and never sign attacker-controlled input with
// the returned keypair.
func ConvertCurve25519PrivateToEd25519(priv [32]byte) (*ExpandedKeypair, byte, error) {
	h := sha512.Sum512(append(append([]byte{}, priv[:]...), curveToEdPersonalization...))

	scalar, err := new(edwards25519.Scalar).SetBytesWithClamping(priv[:])
	if err != nil {
		return nil, 0, &BadPublicKeyError{Reason: "curve25519 secret did not clamp to a valid scalar"}
	}

	var hashPrefix [32]byte
	copy(hashPrefix[:], h[:32])

	public := publicFromScalar(scalar)
	signBit := public[31] >> 7

	kp := &ExpandedKeypair{
		Secret: ExpandedSecretKey{Scalar: scalar, HashPrefix: hashPrefix},
		Public: public,
	}
	return kp, signBit, nil
}

// clampBlindingFactor clamps h the same way an ed25519 secret scalar is
// clamped, then reduces it modulo the group order. Described in part of
// rend-spec-v3 appendix A.2; this is the common first step for both
// public-key and private-key blinding.
func clampBlindingFactor(h [32]byte) (*edwards25519.Scalar, error) {
	return new(edwards25519.Scalar).SetBytesWithClamping(h[:])
}

// BlindPubkey blinds the ed25519 public key pk using the blinding
// factor h, and returns the blinded public key.
//
// This algorithm is described in rend-spec-v3 appendix A.2. Different
// possible values of h may yield the same output for a given pk, a
// limitation of the clamping step; this function is unsuitable for use
// outside the rend-spec-v3 context without careful analysis.
func BlindPubkey(pk [32]byte, h [32]byte) ([32]byte, error) {
	var blinded [32]byte

	blindingFactor, err := clampBlindingFactor(h)
	if err != nil {
		return blinded, &BlindingFailedError{Reason: err.Error()}
	}

	point, err := new(edwards25519.Point).SetBytes(pk[:])
	if err != nil {
		return blinded, &BadPublicKeyError{Reason: "public key does not decompress"}
	}

	blindedPoint := new(edwards25519.Point).ScalarMult(blindingFactor, point)
	copy(blinded[:], blindedPoint.Bytes())
	return blinded, nil
}

// BlindKeypair blinds the ed25519 expanded secret key kp using the
// blinding factor h, and returns the blinded keypair.
//
// This algorithm is described in rend-spec-v3 appendix A.2. For any kp
// and h, BlindKeypair(kp, h).Public must equal BlindPubkey(kp.Public, h);
// this is verified as a property in this package's tests rather than as
// a runtime assertion, since Go has no debug-only assertion facility
// equivalent to Rust's debug_assert!.
func BlindKeypair(kp *ExpandedKeypair, h [32]byte) (*ExpandedKeypair, error) {
	blindingFactor, err := clampBlindingFactor(h)
	if err != nil {
		return nil, &BlindingFailedError{Reason: err.Error()}
	}

	blindedScalar := new(edwards25519.Scalar).Multiply(kp.Secret.Scalar, blindingFactor)

	hash := sha512.New()
	hash.Write([]byte(blindHashPrefixPersonalization))
	hash.Write(kp.Secret.HashPrefix[:])
	digest := hash.Sum(nil)

	var blindedHashPrefix [32]byte
	copy(blindedHashPrefix[:], digest[:32])

	public := publicFromScalar(blindedScalar)

	return &ExpandedKeypair{
		Secret: ExpandedSecretKey{Scalar: blindedScalar, HashPrefix: blindedHashPrefix},
		Public: public,
	}, nil
}

// Sign produces a detached ed25519 signature over msg using the
// expanded keypair kp, following the RFC 8032 section 5.1.6 "expanded
// secret key" signing procedure. It exists because blinded keypairs
// have no 32-byte seed to hand to [crypto/ed25519.Sign]; the scalar
// and hash prefix produced by [BlindKeypair] must be used directly.
func Sign(kp *ExpandedKeypair, msg []byte) []byte {
	rHash := sha512.New()
	rHash.Write(kp.Secret.HashPrefix[:])
	rHash.Write(msg)
	r, err := new(edwards25519.Scalar).SetUniformBytes(rHash.Sum(nil))
	if err != nil {
		panic("hscrypto: impossible: sha512 output is not 64 bytes")
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	RBytes := R.Bytes()

	kHash := sha512.New()
	kHash.Write(RBytes)
	kHash.Write(kp.Public[:])
	kHash.Write(msg)
	k, err := new(edwards25519.Scalar).SetUniformBytes(kHash.Sum(nil))
	if err != nil {
		panic("hscrypto: impossible: sha512 output is not 64 bytes")
	}

	s := new(edwards25519.Scalar).MultiplyAdd(k, kp.Secret.Scalar, r)

	sig := make([]byte, 64)
	copy(sig[:32], RBytes)
	copy(sig[32:], s.Bytes())
	return sig
}
