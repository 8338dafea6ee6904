package aessiv

import "testing"

func TestS2VDeterministic(t *testing.T) {
	key := make([]byte, 16)
	headers := [][]byte{[]byte("header one"), []byte("header two")}
	message := []byte("the message body")

	m1 := newCMAC(newBlockCipher(key))
	got1 := s2v(m1, headers, message)

	m2 := newCMAC(newBlockCipher(key))
	got2 := s2v(m2, headers, message)

	if got1 != got2 {
		t.Fatalf("s2v not deterministic: %x != %x", got1, got2)
	}
}

func TestS2VSensitiveToHeaderOrder(t *testing.T) {
	key := make([]byte, 16)
	message := []byte("message")

	m := newCMAC(newBlockCipher(key))
	forward := s2v(m, [][]byte{[]byte("a"), []byte("b")}, message)

	m.reset()
	backward := s2v(m, [][]byte{[]byte("b"), []byte("a")}, message)

	if forward == backward {
		t.Fatal("expected reordering associated-data headers to change the S2V output")
	}
}

func TestS2VSensitiveToEmptyHeaderInsertion(t *testing.T) {
	key := make([]byte, 16)
	message := []byte("message")

	m := newCMAC(newBlockCipher(key))
	without := s2v(m, [][]byte{[]byte("a")}, message)

	m.reset()
	withEmpty := s2v(m, [][]byte{[]byte("a"), nil}, message)

	if without == withEmpty {
		t.Fatal("expected inserting an empty header to change the S2V output")
	}
}

func TestS2VHandlesMessageShorterThanBlock(t *testing.T) {
	key := make([]byte, 16)
	m := newCMAC(newBlockCipher(key))

	// message.len() < blockSize exercises s2v's "pad and double" branch
	// rather than the xor-tail branch.
	got := s2v(m, nil, []byte("short"))
	var zero block
	if got == zero {
		t.Fatal("s2v of a short message collided with the all-zero block")
	}
}

func TestS2VTooManyHeadersPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for more than 126 associated-data items")
		}
	}()

	key := make([]byte, 16)
	m := newCMAC(newBlockCipher(key))

	headers := make([][]byte, maxAssociatedData+1)
	for i := range headers {
		headers[i] = []byte{byte(i)}
	}
	s2v(m, headers, []byte("message"))
}
