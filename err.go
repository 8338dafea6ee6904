package aessiv

import "errors"

// ErrAuthenticationFailed is returned by Open when the received tag does
// not match the tag recomputed from the (possibly tampered) ciphertext
// and associated data.
//
// It deliberately carries no further detail — not "tag mismatch", not
// "buffer too short" — so that callers, and anyone timing them, cannot
// distinguish why decryption failed.
var ErrAuthenticationFailed = errors.New("aessiv: message authentication failed")

// Fatal, non-recoverable misuse conditions. These only occur from a
// programming error (wrong key length, too many associated-data items, a
// STREAM counter that has wrapped, a seal buffer shorter than the tag)
// and are surfaced as panics rather than returned errors: a correctly
// used caller never triggers them.
const (
	panicKeySize           = "aessiv: invalid key size"
	panicTooManyHeaders    = "aessiv: too many associated data items"
	panicBufferTooShort    = "aessiv: seal buffer shorter than the tag"
	panicCounterOverflow   = "aessiv: STREAM nonce counter overflowed"
	panicWrongNonceSize    = "aessiv: STREAM nonce prefix has the wrong length"
	panicStreamDoneAlready = "aessiv: STREAM instance already consumed by its terminal call"
)
