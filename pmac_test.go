package aessiv

import (
	"bytes"
	"testing"

	"github.com/pschlump/aessiv/internal/testvector"
)

func TestPMACLInverseIsADoublingInverse(t *testing.T) {
	p := newPMAC(newBlockCipher(make([]byte, 16)))

	got := p.lInv
	got.dbl()

	if got != p.l[0] {
		t.Fatalf("dbl(L^-1) = %x, want L[0] = %x", got, p.l[0])
	}
}

func TestPMACLTableIsSuccessiveDoublings(t *testing.T) {
	p := newPMAC(newBlockCipher(make([]byte, 16)))

	for i := 0; i < len(p.l)-1; i++ {
		want := p.l[i]
		want.dbl()
		if want != p.l[i+1] {
			t.Fatalf("L[%d] is not dbl(L[%d]): got %x, want %x", i+1, i, p.l[i+1], want)
		}
	}
}

func TestPMACDeterministic(t *testing.T) {
	key := testvector.MustDecode("000102030405060708090a0b0c0d0e0f")
	msg := []byte("pmac is a parallelizable message authentication code")

	m1 := newPMAC(newBlockCipher(key))
	m1.update(msg)
	tag1 := m1.finish()

	m2 := newPMAC(newBlockCipher(key))
	m2.update(msg)
	tag2 := m2.finish()

	if tag1 != tag2 {
		t.Fatalf("pmac not deterministic: %x != %x", tag1, tag2)
	}
}

func TestPMACChunkedUpdateMatchesSingleShot(t *testing.T) {
	key := testvector.MustDecode("000102030405060708090a0b0c0d0e0f")
	msg := bytes.Repeat([]byte("0123456789abcdef"), 150) // 2400 bytes, several full 128-byte buffers

	whole := newPMAC(newBlockCipher(key))
	whole.update(msg)
	wantTag := whole.finish()

	chunked := newPMAC(newBlockCipher(key))
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		chunked.update(msg[i:end])
	}
	gotTag := chunked.finish()

	if gotTag != wantTag {
		t.Fatalf("chunked pmac update diverged: %x != %x", gotTag, wantTag)
	}
}

func TestPMACZeroWipesTableAndState(t *testing.T) {
	key := testvector.MustDecode("000102030405060708090a0b0c0d0e0f")
	p := newPMAC(newBlockCipher(key))
	p.update([]byte("some message bytes"))

	p.zero()

	var zero block
	for i, v := range p.l {
		if v != zero {
			t.Fatalf("zero did not clear L[%d]", i)
		}
	}
	if p.lInv != zero {
		t.Fatal("zero did not clear L^-1")
	}
	if p.tag != zero || p.offset != zero {
		t.Fatal("zero did not clear the running tag/offset")
	}
}

func TestPMACDiffersFromCMAC(t *testing.T) {
	key := testvector.MustDecode("000102030405060708090a0b0c0d0e0f")
	msg := []byte("same key, same message, different MAC construction")

	c := newCMAC(newBlockCipher(key))
	c.update(msg)
	cmacTag := c.finish()

	p := newPMAC(newBlockCipher(key))
	p.update(msg)
	pmacTag := p.finish()

	if cmacTag == pmacTag {
		t.Fatal("expected CMAC and PMAC to disagree on the same input")
	}
}
