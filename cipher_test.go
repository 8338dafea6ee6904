package aessiv

import (
	"testing"

	"github.com/pschlump/aessiv/internal/testvector"
)

func TestBlockCipherEncrypt8MatchesSingleBlock(t *testing.T) {
	c := newBlockCipher(testvector.MustDecode("000102030405060708090a0b0c0d0e0f"))

	var buf block8
	for i := 0; i < 8; i++ {
		buf.chunk(i)[0] = byte(i)
	}

	want := buf
	for i := 0; i < 8; i++ {
		c.encryptInPlace(want.chunk(i))
	}

	c.encrypt8(&buf)

	if buf != want {
		t.Fatalf("encrypt8 diverged from per-block encryption:\ngot  %x\nwant %x", buf, want)
	}
}

func TestNewBlockCipherRejectsBadKeySize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid AES key size")
		}
	}()
	newBlockCipher(make([]byte, 7))
}
