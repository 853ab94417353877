// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-llcrypto/src/pk/rsa.rs (arti)
//

package hscrypto

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/subtle"
	"crypto/x509"
	"errors"
	"fmt"
)

// RSAIdentityLen is the length in bytes of an [RSAIdentity].
const RSAIdentityLen = 20

// RSAIdentity is a legacy relay identity fingerprint: the SHA-1 digest
// of a DER-encoded RSA public key, as used by first-generation ("v2")
// onion services and pre-ed25519 directory documents.
//
// New code should use ed25519 identities; this type exists only for
// interoperating with documents that still carry the old format.
type RSAIdentity struct {
	id [RSAIdentityLen]byte
}

// RSAIdentityFromBytes builds an [RSAIdentity] from a 20-byte slice,
// returning an error if b is the wrong length.
func RSAIdentityFromBytes(b []byte) (RSAIdentity, error) {
	var id RSAIdentity
	if len(b) != RSAIdentityLen {
		return id, fmt.Errorf("hscrypto: RSA identity must be %d bytes, got %d", RSAIdentityLen, len(b))
	}
	copy(id.id[:], b)
	return id, nil
}

// Bytes returns the 20-byte digest underlying id.
func (id RSAIdentity) Bytes() []byte {
	out := make([]byte, RSAIdentityLen)
	copy(out, id.id[:])
	return out
}

// Equal reports whether id and other represent the same digest, using
// a constant-time comparison since identity fingerprints sometimes
// arrive alongside signatures an attacker could otherwise use as an
// oracle.
func (id RSAIdentity) Equal(other RSAIdentity) bool {
	return subtle.ConstantTimeCompare(id.id[:], other.id[:]) == 1
}

// String renders id as uppercase hex, the conventional display form
// used in Tor consensus documents.
func (id RSAIdentity) String() string {
	const hexdigits = "0123456789ABCDEF"
	buf := make([]byte, 0, RSAIdentityLen*2)
	for _, b := range id.id {
		buf = append(buf, hexdigits[b>>4], hexdigits[b&0xf])
	}
	return string(buf)
}

// LegacyRSAPublicKeyFromDER parses a DER-encoded, PKCS#1-style RSA
// public key (as found in old router descriptors, which wrap the key
// in "-----BEGIN RSA PUBLIC KEY-----" rather than a full X.509
// SubjectPublicKeyInfo), rejecting keys with a negative modulus or
// exponent.
func LegacyRSAPublicKeyFromDER(der []byte) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("hscrypto: parsing legacy RSA public key: %w", err)
	}
	if pub.N.Sign() < 0 || pub.E < 0 {
		return nil, errors.New("hscrypto: legacy RSA public key has a negative component")
	}
	return pub, nil
}

// ToRSAIdentity computes the legacy [RSAIdentity] fingerprint of pub:
// the SHA-1 digest of its PKCS#1 DER encoding.
func ToRSAIdentity(pub *rsa.PublicKey) RSAIdentity {
	der := x509.MarshalPKCS1PublicKey(pub)
	digest := sha1.Sum(der)
	return RSAIdentity{id: digest}
}
