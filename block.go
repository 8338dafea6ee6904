// Package aessiv implements the AES-SIV misuse resistant AEAD family
// defined in RFC 5297 (both the CMAC and PMAC variants), built from
// CTR mode plus the S2V pseudo-random-function chain.
//
// Unlike AES-GCM and most other AEAD constructions, SIV's security does
// not degrade catastrophically if a nonce is reused, reordered, or
// omitted entirely: identical (key, associated-data, plaintext) triples
// always produce identical ciphertexts, and that repetition is the only
// information an attacker ever learns.
package aessiv

import "crypto/subtle"

// blockSize is the width of every primitive in this package: AES's
// 128-bit block, which is also the SIV tag size. Nothing here
// generalizes to other block sizes.
const blockSize = 16

// gf128poly is the reduction polynomial x^128 + x^7 + x^2 + x + 1 used
// by dbl, reduced to its low byte since every other term lands in the
// byte that overflows out of a left shift.
const gf128poly = 0x87

// block is a 16-byte value used for AES blocks, MAC accumulators, and
// the synthetic IV. It is a fixed-size array rather than a slice so its
// length is a static guarantee, not a runtime check.
type block [blockSize]byte

// xor XORs other into b in place.
func (b *block) xor(other *block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// xorBytes XORs a slice of exactly len(b) bytes into b in place.
func (b *block) xorBytes(other []byte) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// dbl doubles b over GF(2^128) with the minimal irreducible polynomial,
// in place. This is the "double" operation shared by CMAC subkey
// derivation, PMAC's L-table, and S2V's chaining step.
//
// The top-bit test is turned into a mask-and-multiply rather than a
// branch so the operation takes the same path regardless of secret
// data, per the constant-time requirement on dbl.
func (b *block) dbl() {
	carry := b[0] >> 7
	for i := 0; i < blockSize-1; i++ {
		b[i] = (b[i] << 1) | (b[i+1] >> 7)
	}
	b[blockSize-1] <<= 1
	b[blockSize-1] ^= gf128poly * carry
}

// clear zeroizes the block's storage. Called whenever a block held
// key-derived material reaches end of life.
func (b *block) clear() {
	for i := range b {
		b[i] = 0
	}
}

// constantTimeEqual reports whether a and b hold the same bytes,
// without branching on the position of the first difference.
func (b *block) constantTimeEqual(other *block) bool {
	return subtle.ConstantTimeCompare(b[:], other[:]) == 1
}
