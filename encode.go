package mqc

// Encode side of the MQ coder.
//
// Each bit narrows the interval [C, C+A) to the sub-interval assigned
// to that bit, with the larger share going to the most probable symbol
// except when the estimate exceeds half the interval (conditional
// exchange, per ITU-T T.800 C.2.7/C.2.8). Whenever A drops below
// 0x8000 the registers are doubled until it recovers, and every 8 (or
// 7, after a stuffed byte) doublings a completed byte moves out of C
// into the stream.
//
// Carries are resolved at byte-transfer time: the pending byte is held
// back one transfer so a carry out of C can still increment it, and a
// pending 0xFF restricts the following byte to 7 data bits so that a
// later carry lands in that byte's spare bit instead of overflowing
// the 0xFF (the bit-stuffing rule that keeps marker codes out of the
// stream).

// EncodeBitContext encodes bit (0 or 1) against the adaptive context
// with index ctx, updating the context's probability estimate. The
// index must be within the contexts allocated at construction.
func (mq *Coder) EncodeBitContext(bit int, ctx int) {
	context := &mq.contexts[ctx]
	s := context.mps
	p := stateProb[context.state]

	mq.a -= p
	if bit == s {
		// Most probable symbol.
		if mq.a >= intervalMin {
			mq.c += p
		} else {
			if mq.a < p {
				// Conditional exchange: the MPS takes the lower,
				// smaller sub-interval.
				mq.a = p
			} else {
				mq.c += p
			}
			context.state = transitionMPS[context.state]
			mq.renormEncode()
		}
	} else {
		// Least probable symbol.
		if mq.a < p {
			mq.c += p
		} else {
			mq.a = p
		}
		if switchMPS[context.state] {
			context.mps = 1 - context.mps
		}
		context.state = transitionLPS[context.state]
		mq.renormEncode()
	}
}

// EncodeBitProb encodes bit (0 or 1) with a fixed probability instead
// of an adaptive context. prob0 is the signed probability code produced
// by Prob0ToMQ: non-negative means symbol 0 is the most probable one
// with that magnitude as the LPS estimate, negative means symbol 1 is,
// with magnitude -prob0. No context state is read or written, so the
// same register machinery can interleave with context-coded bits.
func (mq *Coder) EncodeBitProb(bit int, prob0 int) {
	var p uint32
	s := 0
	if prob0 >= 0 {
		p = uint32(prob0)
	} else {
		p = uint32(-prob0)
		s = 1
	}

	mq.a -= p
	if bit == s {
		if mq.a >= intervalMin {
			mq.c += p
		} else {
			if mq.a < p {
				mq.a = p
			} else {
				mq.c += p
			}
			mq.renormEncode()
		}
	} else {
		if mq.a < p {
			mq.c += p
		} else {
			mq.a = p
		}
		mq.renormEncode()
	}
}

// renormEncode doubles the interval until it regains coding precision,
// shifting the code register in lock-step and transferring a byte each
// time the bit countdown runs out.
func (mq *Coder) renormEncode() {
	for mq.a < intervalMin {
		mq.a <<= 1
		mq.c <<= 1
		mq.t--
		if mq.t == 0 {
			mq.transferByte()
		}
	}
}

// transferByte moves the completed partial-code byte out of C into the
// stream. The very first transfer after RestartEncoding only seeds the
// pending byte without writing, so no spurious leading byte appears;
// from then on the pending byte is committed one transfer late, leaving
// room for carry propagation.
func (mq *Coder) transferByte() {
	if mq.tr == 0xFF {
		// Stuffed transfer: the next byte takes 7 data bits, and bit 27
		// of C doubles as its absorbed carry.
		mq.stream.PutByte(byte(mq.tr))
		mq.pos++
		mq.tr = mq.c >> stuffShift
		mq.c &^= stuffClear
		mq.t = 7
	} else {
		if mq.c >= carryBit {
			mq.tr++
			mq.c &^= carryClear
		}
		if mq.pos >= 0 {
			mq.stream.PutByte(byte(mq.tr))
		}
		mq.pos++
		if mq.tr == 0xFF {
			// The carry turned the committed byte into 0xFF; the next
			// byte must be stuffed even though no 0xFF was coded.
			mq.tr = mq.c >> stuffShift
			mq.c &^= stuffClear
			mq.t = 7
		} else {
			mq.tr = mq.c >> partialShift
			mq.c &^= partialClear
			mq.t = 8
		}
	}
}
