// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-hspow/src/v1/challenge.rs (arti)
//

package hspow

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// pString is the algorithm personalization string, binding a solution
// to this exact puzzle construction even if other similar protocols
// reuse Equi-X. Fixed by proposal 327; changing it breaks
// interoperability.
var pString = [16]byte{'T', 'o', 'r', ' ', 'h', 's', ' ', 'i', 'n', 't', 'r', 'o', ' ', 'v', '1', 0}

const (
	seedLen       = 32
	serviceIDLen  = 32
	nonceLen      = 16
	effortLen     = 4
	pStringOffset = 0
	idOffset      = pStringOffset + 16
	seedOffset    = idOffset + serviceIDLen
	nonceOffset   = seedOffset + seedLen
	effortOffset  = nonceOffset + nonceLen

	// ChallengeLen is the total packed length of a [Challenge]:
	// P(16) || ID(32) || seed(32) || nonce(16) || effort(4) = 100 bytes.
	ChallengeLen = effortOffset + effortLen
)

// ServiceID identifies the onion service a puzzle instance belongs to:
// the blinded ed25519 identity key used in that time period's
// descriptor.
type ServiceID [serviceIDLen]byte

// Seed is the per-descriptor-period random seed published alongside a
// puzzle's parameters.
type Seed [seedLen]byte

// Nonce is the solver-chosen value iterated while searching for a
// solution that clears the effort bar.
type Nonce [nonceLen]byte

// Effort is the u32 difficulty parameter: higher values require
// proportionally more expected solver work.
type Effort uint32

// Instance identifies one puzzle parameterization: which service it
// belongs to and which seed is in effect.
type Instance struct {
	Service ServiceID
	SeedVal Seed
}

// Challenge is the fully assembled Equi-X input string, defined by
// proposal 327 as P || ID || seed || nonce || INT_32(effort).
type Challenge [ChallengeLen]byte

// NewChallenge builds a [Challenge] by packing instance, effort, and
// nonce into the fixed wire layout.
func NewChallenge(instance Instance, effort Effort, nonce Nonce) Challenge {
	var c Challenge
	copy(c[pStringOffset:idOffset], pString[:])
	copy(c[idOffset:seedOffset], instance.Service[:])
	copy(c[seedOffset:nonceOffset], instance.SeedVal[:])
	copy(c[nonceOffset:effortOffset], nonce[:])
	binary.BigEndian.PutUint32(c[effortOffset:ChallengeLen], uint32(effort))
	return c
}

// Seed returns the seed field packed into c.
func (c Challenge) Seed() Seed {
	var s Seed
	copy(s[:], c[seedOffset:nonceOffset])
	return s
}

// Nonce returns the nonce field packed into c.
func (c Challenge) Nonce() Nonce {
	var n Nonce
	copy(n[:], c[nonceOffset:effortOffset])
	return n
}

// Effort returns the effort field packed into c.
func (c Challenge) Effort() Effort {
	return Effort(binary.BigEndian.Uint32(c[effortOffset:ChallengeLen]))
}

// IncrementNonce advances the nonce field in place by one, treating it
// as a little-endian integer of arbitrary width and wrapping around
// when the region overflows. This is the solver's inner loop step.
func (c *Challenge) IncrementNonce() {
	incrementLittleEndian(c[nonceOffset:effortOffset])
}

func incrementLittleEndian(b []byte) {
	for i := range b {
		b[i]++
		if b[i] != 0 {
			return
		}
	}
}

// CheckEffort verifies that proof, a serialized Equi-X solution for
// this challenge, clears the effort bar: the first four bytes of
// Blake2b-32(challenge || proof), read as a big-endian u32, must not
// overflow u32 when multiplied by the challenge's effort value.
//
// The overflow formulation is the normative definition of the
// threshold; it must not be replaced with a division-based comparison.
func (c Challenge) CheckEffort(proof []byte) error {
	hasher, err := blake2b.New(4, nil)
	if err != nil {
		panic("hspow: blake2b-32 construction cannot fail: " + err.Error())
	}
	hasher.Write(c[:])
	hasher.Write(proof)

	value := binary.BigEndian.Uint32(hasher.Sum(nil))
	hi, _ := bits.Mul32(value, uint32(c.Effort()))
	if hi != 0 {
		return &EffortInsufficientError{}
	}
	return nil
}
