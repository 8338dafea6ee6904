// Package testvector decodes the hex-encoded test fixtures used by this
// module's table-driven tests. It is adapted from the teacher's
// base64data helper, retargeted from base64 to hex since every published
// SIV, CMAC, PMAC, and STREAM vector set (RFC 5297, the miscreant vector
// suites) ships its byte strings hex-encoded rather than base64-encoded.
package testvector

import (
	"encoding/hex"
	"fmt"
)

// HexBytes is a []byte decoded from a hex string, for use as a struct
// field in table-driven test fixtures:
//
//	var vectors = []struct {
//		key   testvector.HexBytes
//		nonce testvector.HexBytes
//	}{
//		{key: testvector.MustDecode("000102..."), nonce: testvector.MustDecode("8899aa...")},
//	}
type HexBytes []byte

// MustDecode panics if s is not valid hex. It exists for package-level
// vector tables that must fail fast at init time rather than silently
// produce an empty slice.
func MustDecode(s string) HexBytes {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("testvector: invalid hex fixture %q: %v", s, err))
	}
	return HexBytes(b)
}

// String renders b back to its hex form, for failure messages that want
// to echo the fixture alongside a computed value.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// Equal reports whether b and other decode to the same bytes.
func (b HexBytes) Equal(other []byte) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}
