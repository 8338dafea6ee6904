package aessiv

import "math/bits"

// precomputedBlocks is the number of L-table doublings kept on hand
// (µ in the PMAC paper). 31 doublings cover messages up to 2^31 blocks,
// far beyond anything SIV or STREAM will ever MAC in one call.
const precomputedBlocks = 31

// pmac is Rogaway's parallelizable MAC: unlike cmac's serial chain,
// every full block's contribution can be computed independently of the
// others (through a per-block "offset" derived from a precomputed
// L-table), which is what lets processBuffer hand the whole 128-byte buffer
// to the cipher's encrypt8 in one call.
type pmac struct {
	cipher *blockCipher

	l     [precomputedBlocks]block
	lInv  block

	tag    block
	offset block

	buf    block8
	bufPos int
	ctr    int

	finished bool
}

// newPMAC precomputes the L-table (L[0] = E(0), L[i+1] = dbl(L[i])) and
// L^-1 (a single right-shift-and-conditional-xor of L[0]) and builds a
// ready-to-use pmac instance.
func newPMAC(cipher *blockCipher) *pmac {
	p := &pmac{cipher: cipher}

	var l block
	cipher.encryptInPlace(&l)
	for i := range p.l {
		p.l[i] = l
		l.dbl()
	}

	p.lInv = invertL(p.l[0])
	return p
}

// invertL computes L * x^-1: a right shift by one bit, with a
// conditional XOR by (0x80 << 120) | (0x87 >> 1) when the low bit of l
// was set. This is Equation 2 of the PMAC paper, specialized to the
// 128-bit block size.
func invertL(l block) block {
	lowBit := l[blockSize-1] & 1

	var out block
	for i := blockSize - 1; i > 0; i-- {
		out[i] = (l[i] >> 1) | (l[i-1] << 7)
	}
	out[0] = l[0] >> 1

	if lowBit == 1 {
		out[0] ^= 0x80
		out[blockSize-1] ^= gf128poly >> 1
	}
	return out
}

// lFor returns L[ntz(blockIndex)], the table entry PMAC's offset update
// uses for the given 1-based block index — a count-of-trailing-zeros
// lookup, per the PMAC paper's "Gray code" style offset schedule.
func (p *pmac) lFor(blockIndex int) *block {
	return &p.l[bits.TrailingZeros(uint(blockIndex))]
}

func (p *pmac) reset() {
	p.tag.clear()
	p.offset.clear()
	p.buf.clear()
	p.bufPos = 0
	p.ctr = 0
	p.finished = false
}

// zero wipes the L-table, L^-1, the running tag and offset, the
// buffered input, and the underlying key schedule. p must not be used
// again afterward.
func (p *pmac) zero() {
	for i := range p.l {
		p.l[i].clear()
	}
	p.lInv.clear()
	p.tag.clear()
	p.offset.clear()
	p.buf.clear()
	p.cipher.zero()
	p.bufPos = 0
	p.ctr = 0
	p.finished = true
}

func (p *pmac) update(msg []byte) {
	if p.finished {
		panic("aessiv: pmac updated after finish without reset")
	}

	remaining := block8Size - p.bufPos
	if len(msg) > remaining {
		copy(p.buf[p.bufPos:], msg[:remaining])
		msg = msg[remaining:]
		p.processBuffer()
	}

	for len(msg) > block8Size {
		copy(p.buf[:], msg[:block8Size])
		msg = msg[block8Size:]
		p.processBuffer()
	}

	if len(msg) > 0 {
		copy(p.buf[p.bufPos:p.bufPos+len(msg)], msg)
		p.bufPos += len(msg)
	}
}

// processBuffer consumes a full 128-byte buffer: XOR each block's
// offset in (advancing ctr), encrypt all eight blocks in one call, then
// fold the results into the running tag.
func (p *pmac) processBuffer() {
	for i := 0; i < 8; i++ {
		p.ctr++
		p.offset.xor(p.lFor(p.ctr))
		p.buf.chunk(i).xor(&p.offset)
	}

	p.cipher.encrypt8(&p.buf)

	for i := 0; i < 8; i++ {
		p.tag.xor(p.buf.chunk(i))
	}

	p.bufPos = 0
}

func (p *pmac) finish() block {
	if p.finished {
		panic("aessiv: pmac finished twice without reset")
	}

	pos := 0
	remaining := p.bufPos

	var tmp block
	for remaining > blockSize {
		p.ctr++
		p.offset.xor(p.lFor(p.ctr))

		tmp = p.offset
		tmp.xorBytes(p.buf[pos : pos+blockSize])
		p.cipher.encryptInPlace(&tmp)
		p.tag.xor(&tmp)

		pos += blockSize
		remaining -= blockSize
	}

	if remaining == blockSize {
		p.tag.xorBytes(p.buf[pos : pos+blockSize])
		p.tag.xor(&p.lInv)
	} else {
		for i := 0; i < remaining; i++ {
			p.tag[i] ^= p.buf[pos+i]
		}
		p.tag[remaining] ^= 0x80
	}

	p.cipher.encryptInPlace(&p.tag)
	p.finished = true
	return p.tag
}
