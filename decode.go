package mqc

// Decode side of the MQ coder.
//
// Decoding retraces the encoder's interval narrowing: the 16-bit window
// of the code register is compared against the scaled probability
// estimate to find which sub-interval the coded value fell in, and the
// context state advances exactly as it did while encoding, so both
// sides track the same probability model. When the window narrows below
// precision the registers are doubled and fresh bits are pulled from
// the stream.
//
// Past the end of the stream the refill synthesizes 1-bits, which is
// what makes short terminations decodable: the termination search
// (terminate.go) guarantees the coded value is already pinned down by
// the bytes that were kept.

// DecodeBitContext decodes one bit against the adaptive context with
// index ctx, updating the context's probability estimate. It fails with
// a stream-format error when a marker sequence is read before the
// logical end of the stream; the coder state is unusable afterwards.
func (mq *Coder) DecodeBitContext(ctx int) (int, error) {
	context := &mq.contexts[ctx]
	p := stateProb[context.state]
	s := context.mps
	x := s

	mq.a -= p
	if (mq.c & decodeWindow) >= p<<8 {
		// Coded value sits in the upper sub-interval.
		mq.c = (mq.c & lowByteMask) | ((mq.c & decodeWindow) - p<<8)
		if mq.a < intervalMin {
			if mq.a < p {
				// Conditional exchange: the upper sub-interval held the
				// LPS this time.
				x = 1 - s
				if switchMPS[context.state] {
					context.mps = 1 - context.mps
				}
				context.state = transitionLPS[context.state]
			} else {
				context.state = transitionMPS[context.state]
			}
			if err := mq.renormDecode(); err != nil {
				return 0, err
			}
		}
	} else {
		// Lower sub-interval.
		if mq.a < p {
			context.state = transitionMPS[context.state]
		} else {
			x = 1 - s
			if switchMPS[context.state] {
				context.mps = 1 - context.mps
			}
			context.state = transitionLPS[context.state]
		}
		mq.a = p
		if err := mq.renormDecode(); err != nil {
			return 0, err
		}
	}
	return x, nil
}

// DecodeBitProb decodes one bit coded with a fixed probability. prob0
// is the same signed probability code that was passed to EncodeBitProb
// for this bit. No context state is touched. Fails like
// DecodeBitContext on a marker sequence.
func (mq *Coder) DecodeBitProb(prob0 int) (int, error) {
	var p uint32
	s := 0
	if prob0 >= 0 {
		p = uint32(prob0)
	} else {
		p = uint32(-prob0)
		s = 1
	}
	x := s

	mq.a -= p
	if (mq.c & decodeWindow) >= p<<8 {
		mq.c = (mq.c & lowByteMask) | ((mq.c & decodeWindow) - p<<8)
		if mq.a < intervalMin {
			if mq.a < p {
				x = 1 - s
			}
			if err := mq.renormDecode(); err != nil {
				return 0, err
			}
		}
	} else {
		if mq.a >= p {
			x = 1 - s
		}
		mq.a = p
		if err := mq.renormDecode(); err != nil {
			return 0, err
		}
	}
	return x, nil
}

// renormDecode doubles the interval until it regains coding precision,
// refilling the code register from the stream whenever the bit
// countdown runs out.
func (mq *Coder) renormDecode() error {
	for mq.a < intervalMin {
		if mq.t == 0 {
			if err := mq.fillLSB(); err != nil {
				return err
			}
		}
		mq.a <<= 1
		mq.c <<= 1
		mq.t--
	}
	return nil
}

// fillLSB feeds the next stream byte into the low bits of the code
// register. Past the end of the stream it pads with 1-bits instead. A
// marker sequence (0xFF followed by a byte above 0x8F) gets the same
// padding but fails the call: a marker inside coded data means the
// stream is truncated or corrupted, and decoding must not run past it.
func (mq *Coder) fillLSB() error {
	var b byte
	mq.t = 8
	if mq.pos < mq.stream.Len() {
		b = mq.stream.GetByte(mq.pos)
	}
	if mq.pos == mq.stream.Len() || (mq.tr == 0xFF && b > 0x8F) {
		mq.c += 0xFF
		if mq.pos != mq.stream.Len() {
			return markerError(mq.pos)
		}
	} else {
		if mq.tr == 0xFF {
			// Stuffed byte: only 7 of its bits are data.
			mq.t = 7
		}
		mq.tr = uint32(b)
		mq.pos++
		mq.c += mq.tr << (8 - mq.t)
	}
	return nil
}
