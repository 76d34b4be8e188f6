package mqc

// Register bit layout shared by A and C. From least to most significant:
// 8 register bits, 3 spacer bits, 8 partial-code bits and 1 carry bit.
// The shift and mask values below locate those fields; they define the
// wire format and must not be re-derived.
const (
	intervalMin  = 0x8000     // lower bound of A after renormalization
	carryBit     = 0x08000000 // carry out of the partial-code field (bit 27)
	carryClear   = 0xF8000000 // carry bit and everything above it
	partialShift = 19         // partial-code byte position for a full 8-bit transfer
	partialClear = 0xFFF80000 // partial-code byte plus carry, cleared after a full transfer
	stuffShift   = 20         // partial-code position when only 7 bits fit (after a 0xFF)
	stuffClear   = 0xFFF00000 // bits cleared after a stuffed transfer
	decodeWindow = 0x00FFFF00 // 16-bit compare window of C while decoding
	lowByteMask  = 0x000000FF // bits of C below the decode window
)

// Coder is a context-adaptive binary arithmetic coder implementing the
// MQ coding scheme of the JPEG2000 family (ITU-T T.800 Annex C). A
// single Coder performs both encoding and decoding on one register set;
// RestartEncoding and RestartDecoding switch it between the two roles.
//
// A Coder must be bound to a ByteStream with SetStream before any
// coding call. It is not safe for concurrent use: create one Coder per
// goroutine. The probability tables are immutable and shared safely.
type Coder struct {
	stream *ByteStream

	a   uint32 // interval range
	c   uint32 // code register, the lower bound of the coded interval
	t   int    // bits left before the next byte transfer or refill
	tr  uint32 // pending byte, the one most recently produced or consumed
	pos int    // next byte position in the stream; -1 before the first transfer

	contexts []mqContext
}

// mqContext is one adaptive probability slot: a state index in the
// estimation automaton plus the symbol currently considered most
// probable.
type mqContext struct {
	state int // index into the probability tables (0 to numStates-1)
	mps   int // most probable symbol (0 or 1)
}

// NewCoder returns a coder with numContexts adaptive contexts, reset
// and ready to encode once a stream is bound. numContexts may be zero
// for a coder driven only through the probability-parameterized calls.
func NewCoder(numContexts int) *Coder {
	mq := &Coder{
		contexts: make([]mqContext, numContexts),
	}
	mq.Reset()
	mq.RestartEncoding()
	return mq
}

// SetStream binds the stream the coder writes to or reads from. A nil
// stream binds a fresh empty one.
//
// When reusing a coder across messages, call Terminate before rebinding
// on the encode side, then RestartEncoding and Reset; on the decode
// side call RestartDecoding and Reset after rebinding.
func (mq *Coder) SetStream(s *ByteStream) {
	if s == nil {
		s = NewByteStream()
	}
	mq.stream = s
}

// Reset returns every context to its initial state (state 0, MPS 0).
// Call it to start a statistically independent message.
func (mq *Coder) Reset() {
	for i := range mq.contexts {
		mq.contexts[i] = mqContext{}
	}
}

// RestartEncoding reinitializes the registers for encoding a new
// message. The countdown starts at 12: the 8 transfer bits plus the 3
// spacer bits plus the carry slot of the register layout.
func (mq *Coder) RestartEncoding() {
	mq.a = intervalMin
	mq.c = 0
	mq.t = 12
	mq.tr = 0
	mq.pos = -1
}

// RestartDecoding reinitializes the registers for decoding and primes
// the code register from the first bytes of the bound stream. It fails
// with a stream-format error if those bytes already form a marker
// sequence.
func (mq *Coder) RestartDecoding() error {
	mq.tr = 0
	mq.pos = 0
	mq.c = 0
	if err := mq.fillLSB(); err != nil {
		return err
	}
	mq.c <<= mq.t
	if err := mq.fillLSB(); err != nil {
		return err
	}
	mq.c <<= 7
	mq.t -= 7
	mq.a = intervalMin
	return nil
}

// Position returns the current byte position in the bound stream: the
// number of bytes consumed while decoding, or committed while encoding.
// It is -1 between RestartEncoding and the first byte transfer.
func (mq *Coder) Position() int {
	return mq.pos
}

// RemainingBytes returns the worst-case number of bytes a termination
// can still append for the data coded so far, either 4 or 5 depending
// on how many code bits are pending in the registers. Useful for
// placing stream truncation points while encoding.
func (mq *Coder) RemainingBytes() int {
	if 27-mq.t <= 22 {
		return 4
	}
	return 5
}
