package aessiv

// AEAD is the interface stream.Encryptor and stream.Decryptor drive.
// *Siv implements it; any of the four constructors below produces a
// value satisfying it.
type AEAD interface {
	SealInPlace(associatedData [][]byte, buf []byte)
	OpenInPlace(associatedData [][]byte, buf []byte) ([]byte, error)
}

// Siv is an AES-SIV AEAD instance: one of the four constructions named
// in spec.md §6 (AES-128 or AES-256 security level, CMAC or PMAC
// variant), all built on the same seal/open orchestration over CTR,
// a mac128, and S2V.
//
// A Siv is not safe for concurrent use: Seal and Open both mutate the
// shared MAC state. Separate Siv instances, even sharing a key,
// have no shared state and may be used concurrently.
type Siv struct {
	mac mac128
	ctr *ctrState
}

// splitKey splits a 32- or 64-byte key into its MAC and CTR halves,
// panicking on any other length. SIV always splits its key in half:
// MAC subkey first, CTR subkey second.
func splitKey(key []byte) (macKey, ctrKey []byte) {
	switch len(key) {
	case 32, 64:
		half := len(key) / 2
		return key[:half], key[half:]
	default:
		panic(panicKeySize)
	}
}

// NewAES128CmacSiv builds an AES-128-CMAC-SIV instance from a 32-byte
// key (16 bytes for CMAC, 16 bytes for CTR).
func NewAES128CmacSiv(key []byte) *Siv {
	macKey, ctrKey := splitKey(key)
	if len(macKey) != 16 {
		panic(panicKeySize)
	}
	return &Siv{
		mac: newCMAC(newBlockCipher(macKey)),
		ctr: newCTR(newBlockCipher(ctrKey)),
	}
}

// NewAES256CmacSiv builds an AES-256-CMAC-SIV instance from a 64-byte
// key (32 bytes for CMAC, 32 bytes for CTR).
func NewAES256CmacSiv(key []byte) *Siv {
	macKey, ctrKey := splitKey(key)
	if len(macKey) != 32 {
		panic(panicKeySize)
	}
	return &Siv{
		mac: newCMAC(newBlockCipher(macKey)),
		ctr: newCTR(newBlockCipher(ctrKey)),
	}
}

// NewAES128PmacSiv builds an AES-128-PMAC-SIV instance from a 32-byte
// key (16 bytes for PMAC, 16 bytes for CTR).
func NewAES128PmacSiv(key []byte) *Siv {
	macKey, ctrKey := splitKey(key)
	if len(macKey) != 16 {
		panic(panicKeySize)
	}
	return &Siv{
		mac: newPMAC(newBlockCipher(macKey)),
		ctr: newCTR(newBlockCipher(ctrKey)),
	}
}

// NewAES256PmacSiv builds an AES-256-PMAC-SIV instance from a 64-byte
// key (32 bytes for PMAC, 32 bytes for CTR).
func NewAES256PmacSiv(key []byte) *Siv {
	macKey, ctrKey := splitKey(key)
	if len(macKey) != 32 {
		panic(panicKeySize)
	}
	return &Siv{
		mac: newPMAC(newBlockCipher(macKey)),
		ctr: newCTR(newBlockCipher(ctrKey)),
	}
}

// Overhead is the number of bytes SealInPlace adds to a plaintext: the
// 16-byte tag, always.
const Overhead = blockSize

// SealInPlace encrypts and authenticates buf[16:] in place (the
// plaintext must already be in that trailing slice), writing the
// synthetic IV into buf[:16]. The caller must size buf to
// len(plaintext)+Overhead before calling.
//
// Seal is a pure function of (key, associatedData, plaintext): the same
// inputs always produce the same output, with no nonce required for
// that determinism. Any conventional per-message nonce a caller wants
// is simply one more element of associatedData.
//
// Panics if buf is shorter than Overhead, or if associatedData has more
// than 126 elements.
func (s *Siv) SealInPlace(associatedData [][]byte, buf []byte) {
	if len(buf) < Overhead {
		panic(panicBufferTooShort)
	}

	plaintext := buf[blockSize:]
	iv := s2v(s.mac, associatedData, plaintext)
	copy(buf[:blockSize], iv[:])

	ctrIV := iv
	zeroCtrBits(&ctrIV)
	s.ctr.transform(ctrIV, plaintext)
}

// OpenInPlace decrypts and authenticates buf in place, returning the
// plaintext (an alias into buf[16:]) on success.
//
// On authentication failure it returns ErrAuthenticationFailed, and
// restores buf[16:] to the ciphertext it held on entry — the tentative
// decrypted plaintext never remains visible in the caller's buffer.
func (s *Siv) OpenInPlace(associatedData [][]byte, buf []byte) ([]byte, error) {
	if len(buf) < Overhead {
		return nil, ErrAuthenticationFailed
	}

	var receivedTag block
	copy(receivedTag[:], buf[:blockSize])

	ciphertext := buf[blockSize:]

	ctrIV := receivedTag
	zeroCtrBits(&ctrIV)
	s.ctr.transform(ctrIV, ciphertext)

	expectedTag := s2v(s.mac, associatedData, ciphertext)

	if !expectedTag.constantTimeEqual(&receivedTag) {
		// ciphertext currently holds the tentative plaintext; CTR is
		// its own inverse under the same IV, so running it again
		// restores the original ciphertext before we hand the error
		// back.
		s.ctr.transform(ctrIV, ciphertext)
		return nil, ErrAuthenticationFailed
	}

	return ciphertext, nil
}

// Zero wipes every secret-bearing byte this Siv holds — the MAC's
// derived subkeys or L-table and the CTR key schedule — and leaves the
// instance unusable. Callers that are done with a Siv should call this
// before letting it go, rather than relying on the garbage collector to
// eventually reclaim memory that may still hold key material.
func (s *Siv) Zero() {
	s.mac.zero()
	s.ctr.zero()
}

// zeroCtrBits clears the top bit of bytes 8 and 12 of iv before it
// drives CTR, per RFC 5297: this keeps the CTR counter from wrapping
// across the 2^31-successive-block boundary within a single message,
// and is load-bearing for the construction's security proof. It must
// only ever be applied to a copy of the tag — never to the tag stored
// in the output buffer.
func zeroCtrBits(iv *block) {
	iv[8] &= 0x7f
	iv[12] &= 0x7f
}
