package mqc

// Stream termination.
//
// Ending a message means flushing enough of the register state that any
// decoder completion of the written bytes (it pads with 1-bits past the
// end, see fillLSB) reconstructs a value inside the final interval
// [C, C+A). The easy termination just pushes all significant code bits
// out. The optimal termination additionally searches for the shortest
// prefix of those flush bytes that already pins the value down, and
// trims the stream to it.

// TerminateEasy terminates the stream by flushing all significant code
// bits through ordinary byte transfers. Simple and fast, but may write
// a few more bytes than strictly necessary; use Terminate for the
// shortest stream.
func (mq *Coder) TerminateEasy() {
	nBits := 27 - 15 - mq.t // significant code bits not yet transferred
	mq.c <<= mq.t
	for nBits > 0 {
		mq.transferByte()
		nBits -= mq.t
		mq.c <<= mq.t
	}
	mq.transferByte()
	if mq.t == 7 {
		// The final transfer left a trailing 0xFF that only absorbed
		// stuffing and carries no code bits.
		mq.stream.RemoveByte()
	}
}

// Terminate terminates the stream optimally: it keeps the minimum
// number of trailing bytes for which every end-of-stream completion
// still decodes to a value inside the final interval, then drops
// trailing bytes that the decoder's 1-bit padding reproduces anyway.
func (mq *Coder) Terminate() {
	// The search needs the registers as they stand now; the easy
	// termination below mutates them.
	tr, t, c, a, pos := mq.tr, mq.t, mq.c, mq.a, mq.pos

	base := mq.stream.Len() // bytes present before any termination output
	mq.TerminateEasy()
	length := base + mq.minFlush(tr, t, c, a, pos, base)

	// A trailing 0xFF decodes identically under end-of-stream padding,
	// and keeping it would end the stream on a marker prefix.
	if length >= 1 && mq.stream.GetByte(length-1) == 0xFF {
		length--
	}
	// So does any run of trailing {0xFF, 0x7F} pairs: a stuffed byte of
	// all 1-bits is exactly what the padding synthesizes.
	for length >= 2 &&
		mq.stream.GetByte(length-2) == 0xFF &&
		mq.stream.GetByte(length-1) == 0x7F {
		length -= 2
	}
	mq.stream.RemoveBytes(mq.stream.Len() - length)
}

// minFlush returns the minimum number of termination bytes that make
// the coded value unambiguous. It replays the bytes the easy
// termination wrote against the snapshot registers (tr, t, c, a, pos as
// they stood before termination, base the stream length back then) and
// stops as soon as the value a decoder reconstructs from those bytes,
// completed with 1-bits past the end, falls inside the final interval.
func (mq *Coder) minFlush(tr uint32, t int, c, a uint32, pos, base int) int {
	lower := uint64(tr)<<27 + uint64(c)<<t
	width := uint64(a) << t

	maxBytes := 5
	if cut := mq.stream.Len() - base; maxBytes > cut {
		maxBytes = cut
	}
	if base == 0 && (lower>>32)&0xFF == 0 && pos == -1 {
		// Nothing was ever committed, so the byte the first transfer
		// would have seeded never materialized; shift the bounds up one
		// byte to align them with what the decoder will actually read.
		lower <<= 8
		width <<= 8
	}

	var rf uint64
	n := 0
	s := 8
	sf := 35
	for n < maxBytes && (rf+(uint64(1)<<sf)-1 < lower || rf+(uint64(1)<<sf)-1 >= lower+width) {
		n++
		if n <= 4 {
			sf -= s
			b := uint64(mq.stream.GetByte(base + n - 1))
			rf += b << sf
			if b == 0xFF {
				// The byte after a 0xFF carries 7 bits, mirroring the
				// stuffing rule on the decode side.
				s = 7
			} else {
				s = 8
			}
		}
		// A fifth byte is never accumulated: past four bytes the
		// residual below sf either already fits the interval or a fifth
		// full flush is required regardless of its value.
	}
	return n
}
