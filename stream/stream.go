// Package stream wraps any aessiv.AEAD in the STREAM online AEAD
// chaining construction (Hoang, Reyhanitabar, Rogaway, and Vizár,
// "Online Authenticated-Encryption and its Nonce-Reuse Misuse-
// Resistance"), turning a single-message misuse-resistant AEAD into an
// ordered multi-message channel with first/last framing.
package stream

import (
	"encoding/binary"

	"github.com/pschlump/aessiv"
)

// noncePrefixSize is the length of the caller-supplied nonce prefix.
// The construction's full per-segment nonce is
// prefix(8) ∥ counter(4, big-endian) ∥ flag(1) = 13 bytes, matching the
// vector suite this implementation was pinned against (see
// SPEC_FULL.md §4, resolving the 8-vs-13-byte ambiguity in the
// reference sources).
const noncePrefixSize = 8

// nonceSize is the full per-segment nonce length: prefix + counter + flag.
const nonceSize = noncePrefixSize + 4 + 1

// lastSegmentFlag marks a STREAM segment as the terminal one.
const lastSegmentFlag = 1

// nonceEncoder builds STREAM's per-segment nonce: a fixed prefix, a
// 32-bit big-endian counter that increments after every non-terminal
// segment, and a trailing flag byte that is 0 throughout the stream and
// 1 only for the terminal segment.
type nonceEncoder struct {
	value   [nonceSize]byte
	counter uint32
}

func newNonceEncoder(prefix []byte) nonceEncoder {
	if len(prefix) != noncePrefixSize {
		panic("aessiv/stream: nonce prefix has the wrong length")
	}
	var n nonceEncoder
	copy(n.value[:noncePrefixSize], prefix)
	return n
}

func (n *nonceEncoder) current() []byte {
	return n.value[:]
}

// advance increments the segment counter after a non-terminal seal or
// open, and writes it into the nonce. Panics on 32-bit counter overflow.
func (n *nonceEncoder) advance() {
	if n.counter == ^uint32(0) {
		panic("aessiv/stream: nonce counter overflowed")
	}
	n.counter++
	binary.BigEndian.PutUint32(n.value[noncePrefixSize:noncePrefixSize+4], n.counter)
}

// terminal sets the flag byte for the stream's final segment, without
// advancing the counter — the last segment's nonce keeps whatever
// counter value the stream last used.
func (n *nonceEncoder) terminal() []byte {
	n.value[nonceSize-1] = lastSegmentFlag
	return n.value[:]
}

// withNonce returns a fresh associated-data vector with nonce appended,
// never mutating the caller's ad slice (append alone could, if it had
// spare capacity).
func withNonce(ad [][]byte, nonce []byte) [][]byte {
	out := make([][]byte, len(ad)+1)
	copy(out, ad)
	out[len(ad)] = nonce
	return out
}

// Encryptor seals an ordered sequence of messages under a single key
// and nonce prefix, chaining them with a monotonically increasing
// segment counter so that truncation and reordering are both
// detectable on decryption.
//
// An Encryptor is single-use past its terminal call: SealLastInPlace
// consumes it, matching the "the stream encryptor object" semantics of
// the STREAM paper (Rust's ownership-typed consuming `self` becomes, in
// Go, a runtime panic against reuse).
type Encryptor struct {
	aead  aessiv.AEAD
	nonce nonceEncoder
	done  bool
}

// NewEncryptor builds a STREAM encryptor from an already-keyed AEAD
// (any of aessiv's four SIV constructions) and an 8-byte nonce prefix,
// recommended to be chosen uniquely per stream (it need not be secret
// or random — SIV's misuse resistance tolerates a reused or all-zero
// prefix, at the cost of only the usual SIV leakage).
func NewEncryptor(aead aessiv.AEAD, noncePrefix []byte) *Encryptor {
	return &Encryptor{aead: aead, nonce: newNonceEncoder(noncePrefix)}
}

// SealNextInPlace seals a non-terminal segment, then advances the
// stream's counter.
func (e *Encryptor) SealNextInPlace(ad [][]byte, buf []byte) {
	if e.done {
		panic("aessiv/stream: encryptor already consumed by SealLastInPlace")
	}
	e.aead.SealInPlace(withNonce(ad, e.nonce.current()), buf)
	e.nonce.advance()
}

// SealLastInPlace seals the stream's terminal segment and consumes the
// encryptor; it must not be called again.
func (e *Encryptor) SealLastInPlace(ad [][]byte, buf []byte) {
	if e.done {
		panic("aessiv/stream: encryptor already consumed by SealLastInPlace")
	}
	e.aead.SealInPlace(withNonce(ad, e.nonce.terminal()), buf)
	e.done = true
}

// Decryptor mirrors Encryptor: it expects segments in the exact order
// they were sealed, and rejects any segment whose flag byte doesn't
// match its position in the stream, because the nonce — and therefore
// the synthetic IV — won't match what was sealed.
type Decryptor struct {
	aead  aessiv.AEAD
	nonce nonceEncoder
	done  bool
}

// NewDecryptor builds a STREAM decryptor from an already-keyed AEAD and
// the same 8-byte nonce prefix the sender used.
func NewDecryptor(aead aessiv.AEAD, noncePrefix []byte) *Decryptor {
	return &Decryptor{aead: aead, nonce: newNonceEncoder(noncePrefix)}
}

// OpenNextInPlace opens a non-terminal segment, then advances the
// stream's counter. Returns aessiv.ErrAuthenticationFailed if buf
// wasn't sealed with this stream's key, prefix, and position — whether
// because it was tampered with, sealed by SealLastInPlace instead, or
// is simply out of order.
func (d *Decryptor) OpenNextInPlace(ad [][]byte, buf []byte) ([]byte, error) {
	if d.done {
		panic("aessiv/stream: decryptor already consumed by OpenLastInPlace")
	}
	pt, err := d.aead.OpenInPlace(withNonce(ad, d.nonce.current()), buf)
	if err != nil {
		return nil, err
	}
	d.nonce.advance()
	return pt, nil
}

// OpenLastInPlace opens the stream's terminal segment and consumes the
// decryptor; it must not be called again. A caller that never calls it
// has not observed proof the stream wasn't truncated.
func (d *Decryptor) OpenLastInPlace(ad [][]byte, buf []byte) ([]byte, error) {
	if d.done {
		panic("aessiv/stream: decryptor already consumed by OpenLastInPlace")
	}
	pt, err := d.aead.OpenInPlace(withNonce(ad, d.nonce.terminal()), buf)
	if err != nil {
		return nil, err
	}
	d.done = true
	return pt, nil
}
