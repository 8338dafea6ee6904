package aessiv

import (
	"crypto/aes"
	"crypto/cipher"
)

// blockCipher is the keyed AES instance every MAC and CTR state in this
// package is built on. It exposes single-block encryption plus an
// encrypt8 that process eight blocks in a row; crypto/aes has no native
// eight-way path, so encrypt8 here is a plain loop, which spec.md's
// design notes call out as an acceptable fallback — the eight-way path
// is a throughput optimization for ciphers that do support it, not a
// correctness requirement.
//
// crypto/aes.Block already dispatches to AES-NI (amd64) or the ARMv8
// crypto extensions when the running CPU supports them, which is the
// "hardware acceleration when available" spec.md asks of this
// component; there is no need for a bespoke asm or cgo path.
type blockCipher struct {
	aes cipher.Block
}

// newBlockCipher builds a blockCipher from a 16- or 32-byte AES key.
// Any other length is a programmer error: AES only defines 128-, 192-,
// and 256-bit keys, and this package only ever hands it 16 or 32 bytes
// (the two MAC/CTR subkey sizes SIV supports).
func newBlockCipher(key []byte) *blockCipher {
	c, err := aes.NewCipher(key)
	if err != nil {
		// key came from splitting a key this package already validated
		// the length of; aes.NewCipher can only fail on length.
		panic(panicKeySize)
	}
	return &blockCipher{aes: c}
}

// encrypt replaces dst's contents with the AES encryption of src.
func (c *blockCipher) encrypt(dst, src *block) {
	c.aes.Encrypt(dst[:], src[:])
}

// encryptInPlace encrypts b in place.
func (c *blockCipher) encryptInPlace(b *block) {
	c.aes.Encrypt(b[:], b[:])
}

// encrypt8 encrypts all eight blocks of b in place.
func (c *blockCipher) encrypt8(b *block8) {
	for i := 0; i < 8; i++ {
		blk := b.chunk(i)
		c.aes.Encrypt(blk[:], blk[:])
	}
}

// zero drops the key schedule held in c. crypto/aes's cipher.Block keeps
// its expanded round keys in unexported state with no exposed wipe
// primitive, so this cannot scrub that memory directly; dropping the
// only reference to it is the most this package can do without
// reimplementing AES's key schedule itself, and it is what lets the
// schedule be collected rather than living for the life of the process.
func (c *blockCipher) zero() {
	c.aes = nil
}
