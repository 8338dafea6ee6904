package aessiv

import "encoding/binary"

// ctrState is AES-CTR with a 128-bit big-endian counter, the keystream
// generator SIV uses to encrypt and decrypt the message body. It has no
// authentication of its own — confidentiality only, with S2V supplying
// integrity around it.
type ctrState struct {
	cipher *blockCipher
}

// newCTR builds a ctrState over the given keyed cipher.
func newCTR(cipher *blockCipher) *ctrState {
	return &ctrState{cipher: cipher}
}

// zero drops c's key schedule. c holds no block-typed secret state of
// its own — the counter it transforms is always caller-supplied and
// never retained between calls — so wiping the cipher is all that's
// needed here. c must not be used again afterward.
func (c *ctrState) zero() {
	c.cipher.zero()
}

// transform XORs the CTR keystream generated from the given 16-byte
// initial counter into buf in place. The counter value the caller
// passes in is never mutated; SIV always derives a fresh counter per
// call and has no use for a running one.
func (c *ctrState) transform(counter block, buf []byte) {
	var ks block
	for len(buf) > 0 {
		c.cipher.encrypt(&ks, &counter)
		incrementCounter(&counter)

		n := blockSize
		if len(buf) < n {
			n = len(buf)
		}
		for i := 0; i < n; i++ {
			buf[i] ^= ks[i]
		}
		buf = buf[n:]
	}
}

// incrementCounter treats b as a big-endian 128-bit integer and adds
// one, wrapping around on overflow. This is CTR's internal counter
// arithmetic, distinct from (and with no fixed relationship to)
// STREAM's 32-bit segment counter.
func incrementCounter(b *block) {
	lo := binary.BigEndian.Uint64(b[8:])
	lo++
	binary.BigEndian.PutUint64(b[8:], lo)
	if lo == 0 {
		hi := binary.BigEndian.Uint64(b[:8])
		hi++
		binary.BigEndian.PutUint64(b[:8], hi)
	}
}
